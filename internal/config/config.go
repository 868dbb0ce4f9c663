// Package config resolves where toolbelt keeps its local data.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const envDataDir = "TOOLBELT_DATA_DIR"

type Config struct {
	// DataDir holds finance.db, knowledge.json and the vault/ directory.
	DataDir string
}

// Load resolves the data directory and creates it if missing. A .env file in
// the working directory is honored when present; real environment variables
// win over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dir := os.Getenv(envDataDir)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".toolbelt")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	return &Config{DataDir: dir}, nil
}
