package files

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirName defines the folder under the user's home directory.
	DefaultDirName = ".prompter"
	// HomeEnv overrides the base directory when set.
	HomeEnv = "PROMPTER_HOME"
)

// ResolveBasePath picks the directory holding config.yaml, prompter.log and
// recordings: $PROMPTER_HOME when set, else ~/.prompter.
func ResolveBasePath() (string, error) {
	if override := strings.TrimSpace(os.Getenv(HomeEnv)); override != "" {
		return ExpandPath(override)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}

// ExpandPath expands $VARS and a leading "~/" and returns the cleaned
// absolute path. "~user" forms are left alone.
func ExpandPath(input string) (string, error) {
	expanded, err := expand(input)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}

func expand(input string) (string, error) {
	input = os.ExpandEnv(strings.TrimSpace(input))
	if input == "~" || strings.HasPrefix(input, "~/") || strings.HasPrefix(input, "~"+string(filepath.Separator)) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, input[1:])
	}
	return input, nil
}
