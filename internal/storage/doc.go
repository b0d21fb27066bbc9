// Package storage persists the league document.
//
// The whole document is read at session start and written after every change, so
// every backend stores exactly one JSON document:
//
//   - FileStorage keeps league.json in a data directory (default ~/.local/share/golf-league/)
//   - GistStorage keeps golf-league.json in a private GitHub Gist, optionally encrypted
//   - RedisStorage keeps the document under a single key
//
// Export and Import move the same document through any reader or writer, which is how
// a league is backed up and restored.
package storage
