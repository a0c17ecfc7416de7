package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Secrets is the optional credential bootstrap file read once at startup.
type Secrets struct {
	ESPNS2   string `json:"espn_s2"`
	SWID     string `json:"swid"`
	LeagueID int    `json:"league_id"`
}

// LoadSecrets reads the bootstrap file. A missing file is not an error; the
// server simply starts unauthenticated.
func LoadSecrets(path string) (*Secrets, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading secrets file: %w", err)
	}

	var s Secrets
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing secrets file: %w", err)
	}
	return &s, nil
}
