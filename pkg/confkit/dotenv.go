package confkit

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	dotenvFile string
)

// LoadDotenvOnce loads variables from the first .env file found. ENV_FILE
// names the file explicitly; otherwise the working directory is searched,
// then the repository root. Existing variables win unless DOTENV_OVERLOAD=1.
// NO_DOTENV=1 disables loading entirely.
func LoadDotenvOnce() {
	dotenvOnce.Do(func() {
		dotenvFile = loadDotenv()
	})
}

// DotenvFile returns the .env path applied by LoadDotenvOnce, if any.
func DotenvFile() string {
	return dotenvFile
}

func loadDotenv() string {
	if os.Getenv("NO_DOTENV") == "1" {
		return ""
	}
	load := godotenv.Load
	if os.Getenv("DOTENV_OVERLOAD") == "1" {
		load = godotenv.Overload
	}

	for _, candidate := range dotenvCandidates() {
		if !fileExists(candidate) {
			continue
		}
		if err := load(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func dotenvCandidates() []string {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		return []string{envFile}
	}
	var out []string
	if wd, err := os.Getwd(); err == nil {
		out = append(out, filepath.Join(wd, ".env"))
	}
	if root, err := ProjectRoot(); err == nil {
		out = append(out, filepath.Join(root, ".env"))
	}
	return out
}
