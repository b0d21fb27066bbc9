// Package session holds the state of one operator session against the league.
//
// Open reads the whole league document from a store. Every action that changes the
// league writes the whole document back before returning, so the store always reflects
// the last completed action. The live leaderboard snapshot is transient: it lives only
// in the session until it is saved as a tournament.
package session
