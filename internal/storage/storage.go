package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/golf-league/internal/league"
)

// Filename is the league document inside a data directory
const Filename = "league.json"

// Storage loads and saves the league document as a unit
type Storage interface {
	Load() (*league.League, error)
	Save(l *league.League) error
}

// Decode parses a league document. Empty input is an empty league.
func Decode(data []byte) (*league.League, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return league.New(), nil
	}
	var l league.League
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing league document: %w", err)
	}
	l.Normalize()
	return &l, nil
}

// Encode renders a league document with two-space indentation
func Encode(l *league.League) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding league document: %w", err)
	}
	return data, nil
}

// Export writes the whole document to w
func Export(w io.Writer, l *league.League) error {
	data, err := Encode(l)
	if err != nil {
		return err
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// Import reads a document previously written by Export
func Import(r io.Reader) (*league.League, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}
	return Decode(data)
}

// FileStorage keeps the document in a JSON file
type FileStorage struct {
	dataDir string
}

// NewFileStorage creates a FileStorage rooted at dataDir, creating the directory.
// A leading ~/ is expanded to the home directory.
func NewFileStorage(dataDir string) (*FileStorage, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &FileStorage{dataDir: dataDir}, nil
}

// Path returns the document path
func (s *FileStorage) Path() string {
	return filepath.Join(s.dataDir, Filename)
}

// Load reads the document. A missing file is an empty league.
func (s *FileStorage) Load() (*league.League, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return league.New(), nil
		}
		return nil, fmt.Errorf("reading league: %w", err)
	}
	return Decode(data)
}

// Save writes the document, stamping its modification time
func (s *FileStorage) Save(l *league.League) error {
	l.Touch()
	data, err := Encode(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path(), data, 0644); err != nil {
		return fmt.Errorf("writing league: %w", err)
	}
	return nil
}
