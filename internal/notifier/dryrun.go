package notifier

import (
	"fmt"
	"io"
)

// DryRunNotifier prints what would be posted without posting
type DryRunNotifier struct {
	w io.Writer
}

// NewDryRunNotifier creates a dry-run notifier writing to w
func NewDryRunNotifier(w io.Writer) *DryRunNotifier {
	return &DryRunNotifier{w: w}
}

// Notify prints the Telegram message and the tweet
func (n *DryRunNotifier) Notify(d *Digest) error {
	tweet := FormatTweet(d)
	fmt.Fprintln(n.w, "--- Telegram ---")
	fmt.Fprintln(n.w, FormatDigest(d))
	fmt.Fprintln(n.w, "--- Tweet ---")
	fmt.Fprintln(n.w, tweet)
	fmt.Fprintf(n.w, "\n(Length: %d characters)\n", len([]rune(tweet)))
	return nil
}
