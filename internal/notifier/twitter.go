package notifier

import (
	"fmt"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/golf-league/internal/config"
)

// TwitterNotifier posts digests as a single tweet
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a Twitter notifier from OAuth1 credentials
func NewTwitterNotifier(creds config.TwitterConfig) (*TwitterNotifier, error) {
	if !creds.Complete() {
		return nil, fmt.Errorf("missing required Twitter credentials (TWITTER_API_KEY, TWITTER_API_SECRET, TWITTER_ACCESS_TOKEN, TWITTER_ACCESS_SECRET)")
	}

	cfg := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := cfg.Client(oauth1.NoContext, token)

	return &TwitterNotifier{client: twitter.NewClient(httpClient)}, nil
}

// Notify posts the trimmed digest
func (n *TwitterNotifier) Notify(d *Digest) error {
	if _, _, err := n.client.Statuses.Update(FormatTweet(d), nil); err != nil {
		return fmt.Errorf("failed to post tweet for %s: %w", d.Tournament, err)
	}
	return nil
}
