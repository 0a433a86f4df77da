// Command roulette suggests the most popular movie you have not seen yet.
//
// It talks to The Movie Database directly, keeps the seen list in a local
// SQLite file, and can serve the same operations over HTTP with
// "roulette serve".
package main
