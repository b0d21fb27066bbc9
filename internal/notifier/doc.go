// Package notifier posts league standings digests.
//
// A Digest is built from the league after a tournament is imported. Telegram receives
// the full HTML-formatted table; Twitter receives a plain-text version trimmed to fit
// a single tweet. DryRunNotifier writes the messages to a writer instead of posting.
package notifier
