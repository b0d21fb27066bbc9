// Package scoring computes team results under the top-3 rule.
//
// A team's score for one tournament is the sum of its three highest individual prizes.
// Every function here is a pure fold over the league document; nothing is cached, so
// callers recompute after each mutation or live refresh.
package scoring
