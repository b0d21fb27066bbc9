// Package league provides the canonical data model for a fantasy golf league.
//
// The league package holds per-golfer tournament results (prize and status), payout
// tables, intermediate player observations produced by the source normalizers, and the
// League document itself: team rosters, tournaments and the season order. Golfer names
// are the join key between rosters and results and are compared with exact string
// equality; no normalization is ever applied.
package league
