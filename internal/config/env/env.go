package env

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Dir holds the per-environment .env files
var Dir = filepath.Join("internal", "config", "env")

// Name returns the environment the files are selected for
func Name() string {
	if name := os.Getenv("ENV"); name != "" {
		return name
	}
	return "development"
}

// Candidates lists the .env files to try, most specific first. Only the file
// for the current environment is considered, never another environment's.
func Candidates() []string {
	return []string{
		filepath.Join(Dir, fmt.Sprintf(".env.%s", Name())),
		".env",
	}
}

// Load loads the first .env file found and returns its path. Variables that
// are already set in the process environment are never overridden. Having no
// file at all is fine; the environment alone may carry the configuration.
func Load() string {
	for _, loc := range Candidates() {
		if err := godotenv.Load(loc); err == nil {
			return loc
		}
	}
	return ""
}
