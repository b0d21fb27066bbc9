// Package cli implements the command-line interface for golf-league.
//
// The cli package provides the Cobra-based CLI for importing tournament results,
// following a live leaderboard, resolving golfers that need review, managing teams and
// the season order, and reporting standings as text or JSON. It builds a session from
// the configured storage backend and the article and live-feed fetchers.
package cli
