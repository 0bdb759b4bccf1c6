package config

// This file loads the static location reference data: the place-name index
// and the nearby-code table.  Both are read once at startup and injected
// into the resolver; they are never live-reloaded.  When no file is
// configured the built-in defaults are used so the server runs without any
// external data.

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/flightexpert/booking-engine/internal/location"
)

// LoadLocationIndex reads a JSON object of {"Place Name": "CODE"} pairs.
// An empty path selects the built-in default index.
func LoadLocationIndex(path string) (map[string]string, error) {
	if path == "" {
		return location.DefaultIndex(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read location index: %w", err)
	}
	var index map[string]string
	if err := json.Unmarshal(raw, &index); err != nil {
		return nil, fmt.Errorf("parse location index: %w", err)
	}
	return index, nil
}

// LoadNearbyCodes reads a JSON object of {"CODE": ["ALT1","ALT2"]} pairs.
// An empty path selects the built-in default table.
func LoadNearbyCodes(path string) (map[string][]string, error) {
	if path == "" {
		return location.DefaultNearby(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read nearby codes: %w", err)
	}
	var nearby map[string][]string
	if err := json.Unmarshal(raw, &nearby); err != nil {
		return nil, fmt.Errorf("parse nearby codes: %w", err)
	}
	return nearby, nil
}
