// Package livefeed reads the live PGA Tour scoreboard feed.
//
// The feed's field types drift between endpoints and over a season, so decoding is
// tolerant: a value may arrive as a string, a number or an object carrying a display
// field. Positions in the feed are not trusted; DerivePositions recomputes them from
// scores.
package livefeed
