package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"movieroulette/internal/details"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range r {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
			WidthMax:    72,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func renderStatus(kind statusKind, message string, colorize bool) string {
	label := "INFO"
	color := ansiBlue
	switch kind {
	case statusOK:
		label, color = "OK", ansiGreen
	case statusWarn:
		label, color = "WARN", ansiYellow
	}
	line := fmt.Sprintf("[%s] %s", label, message)
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func printStatus(cmd *cobra.Command, kind statusKind, format string, args ...any) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderStatus(kind, fmt.Sprintf(format, args...), shouldColorize(out)))
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// renderMovie lays out a movie the way the detail screen did: title, genres,
// overview, then links.
func renderMovie(movie *details.Movie, colorize bool) string {
	var b strings.Builder
	title := fmt.Sprintf("%s (#%s)", movie.Title, movie.ID)
	if colorize {
		title = ansiBold + title + ansiReset
	}
	b.WriteString(title)
	b.WriteByte('\n')
	if len(movie.Genres) > 0 {
		fmt.Fprintf(&b, "Genres:   %s\n", strings.Join(movie.Genres, ", "))
	}
	if movie.Overview != "" {
		fmt.Fprintf(&b, "\n%s\n\n", text.WrapSoft(movie.Overview, 76))
	}
	if movie.Poster != nil {
		fmt.Fprintf(&b, "Poster:   %s (%dx%d)\n", movie.Poster.URL, movie.Poster.Width, movie.Poster.Height)
	}
	if movie.CrossReferenceURL != "" {
		fmt.Fprintf(&b, "IMDb:     %s\n", movie.CrossReferenceURL)
	}
	return b.String()
}
