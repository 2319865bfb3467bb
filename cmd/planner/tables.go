package main

import (
	"fmt"

	"github.com/couchcryptid/garden-planner-service/internal/reference"
)

// loadTables reads the embedded reference tables, or the ones in dir when set.
func loadTables(dir string) (*reference.Tables, error) {
	if dir == "" {
		t, err := reference.Load()
		if err != nil {
			return nil, fmt.Errorf("load embedded reference tables: %w", err)
		}
		return t, nil
	}
	t, err := reference.LoadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load reference tables from %s: %w", dir, err)
	}
	return t, nil
}
