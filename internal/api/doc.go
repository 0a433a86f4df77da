// Package api serves the roulette session over HTTP for mobile and web
// front ends.
//
// # Routes
//
//	GET    /healthz                  store reachability
//	GET    /api/genres               genre names accepted by the genre filter
//	GET    /api/suggestion           ?year=&genre= most popular unseen movie
//	GET    /api/movies/{id}          movie details
//	GET    /api/movies/{id}/poster   poster image bytes
//	GET    /api/seen                 seen list, oldest first
//	POST   /api/seen                 {"id","title"} mark seen
//	DELETE /api/seen/{id}            forget one movie
//	DELETE /api/seen                 clear the list
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Errors are returned as {"code","message"}
// where message is the same user-facing text the CLI prints. A query
// parameter that is present but empty counts as a supplied filter, so
// "genre=" is rejected rather than ignored.
package api
