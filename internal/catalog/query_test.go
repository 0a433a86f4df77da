package catalog_test

import (
	"testing"

	"movieroulette/internal/catalog"
)

func TestTermsEncodePreservesOrder(t *testing.T) {
	year := 2020
	terms := catalog.DiscoverQuery{Year: &year}.Terms().With("page", "1")
	got := terms.Encode()
	want := "sort_by=popularity.desc&include_adult=false&include_video=false&year=2020&page=1"
	if got != want {
		t.Fatalf("Encode() = %q, want %q", got, want)
	}
}

func TestDiscoverQueryOmitsAbsentFilters(t *testing.T) {
	terms := catalog.DiscoverQuery{}.Terms()
	if terms.Has(catalog.ParamYear) || terms.Has(catalog.ParamWithGenres) {
		t.Fatalf("expected no filter terms, got %v", terms)
	}

	zero := 0
	terms = catalog.DiscoverQuery{GenreID: &zero}.Terms()
	if v, ok := terms.Get(catalog.ParamWithGenres); !ok || v != "0" {
		t.Fatalf("present filter must be sent even when zero, got %v", terms)
	}
}

func TestTermsWithDoesNotAlias(t *testing.T) {
	base := catalog.Terms{{Key: "a", Value: "1"}}
	first := base.With("b", "2")
	second := base.With("c", "3")
	if first.Has("c") || second.Has("b") {
		t.Fatalf("With must copy: first=%v second=%v", first, second)
	}
}
