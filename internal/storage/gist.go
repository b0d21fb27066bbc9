package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pfrederiksen/golf-league/internal/crypto"
	"github.com/pfrederiksen/golf-league/internal/league"
)

const (
	gistAPIURL   = "https://api.github.com/gists"
	gistFilename = "golf-league.json"
	gistTimeout  = 15 * time.Second
)

// GistStorage keeps the document in a GitHub Gist
type GistStorage struct {
	gistID      string
	githubToken string
	apiURL      string
	httpClient  *http.Client
	encryptor   *crypto.Encryptor
}

// NewGistStorage creates a Gist-backed store. A non-empty encryptionKey seals the
// document before it leaves the machine.
func NewGistStorage(gistID, githubToken, encryptionKey string) (*GistStorage, error) {
	if gistID == "" {
		return nil, fmt.Errorf("gist ID is required")
	}
	if githubToken == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	return &GistStorage{
		gistID:      gistID,
		githubToken: githubToken,
		apiURL:      gistAPIURL,
		httpClient: &http.Client{
			Timeout: gistTimeout,
		},
		encryptor: crypto.NewEncryptor(encryptionKey),
	}, nil
}

func setGitHubHeaders(req *http.Request, token string) {
	req.Header.Set("Authorization", fmt.Sprintf("token %s", token))
	req.Header.Set("Accept", "application/vnd.github.v3+json")
}

// Load retrieves the document. A gist without the league file is an empty league.
func (g *GistStorage) Load() (*league.League, error) {
	url := fmt.Sprintf("%s/%s", g.apiURL, g.gistID)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	setGitHubHeaders(req, g.githubToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Response bodies can echo request details, keep them out of errors
		return nil, fmt.Errorf("GitHub API error (status %d)", resp.StatusCode)
	}

	var gistResp struct {
		Files map[string]struct {
			Content string `json:"content"`
		} `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&gistResp); err != nil {
		return nil, fmt.Errorf("decoding gist response: %w", err)
	}

	file, exists := gistResp.Files[gistFilename]
	if !exists {
		return league.New(), nil
	}

	data, err := g.encryptor.Open(file.Content)
	if err != nil {
		return nil, fmt.Errorf("decrypting league: %w", err)
	}
	return Decode(data)
}

// Save replaces the league file in the gist
func (g *GistStorage) Save(l *league.League) error {
	l.Touch()
	data, err := Encode(l)
	if err != nil {
		return err
	}
	content, err := g.encryptor.Seal(data)
	if err != nil {
		return fmt.Errorf("encrypting league: %w", err)
	}

	payload, err := json.Marshal(gistPayload("", content, false))
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s/%s", g.apiURL, g.gistID)
	req, err := http.NewRequest("PATCH", url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	setGitHubHeaders(req, g.githubToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("updating gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GitHub API error (status %d)", resp.StatusCode)
	}
	return nil
}

func gistPayload(description, content string, create bool) map[string]interface{} {
	payload := map[string]interface{}{
		"files": map[string]interface{}{
			gistFilename: map[string]string{
				"content": content,
			},
		},
	}
	if create {
		payload["description"] = description
		payload["public"] = false
	}
	return payload
}

// CreateGist creates a private gist holding an empty league and returns its ID
func CreateGist(githubToken, description string) (string, error) {
	return createGist(gistAPIURL, githubToken, description)
}

func createGist(apiURL, githubToken, description string) (string, error) {
	if githubToken == "" {
		return "", fmt.Errorf("GitHub token is required")
	}

	data, err := Encode(league.New())
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(gistPayload(description, string(data), true))
	if err != nil {
		return "", fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	setGitHubHeaders(req, githubToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: gistTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("creating gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("GitHub API error (status %d)", resp.StatusCode)
	}

	var gistResp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&gistResp); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	return gistResp.ID, nil
}
