package testutils

import (
	"os"

	"github.com/mitchellh/go-homedir"
)

// SetupHomeDir sets up the $HOME directory for a test
// and returns the directory name along with a reset function
func SetupHomeDir(newHome string) (string, func()) {
	origHome := os.Getenv("HOME")
	if newHome == "" {
		newHome = "."
	}

	homedir.DisableCache = true
	_ = os.Setenv("HOME", newHome)

	return newHome, func() {
		homedir.DisableCache = false
		_ = os.Setenv("HOME", origHome)
	}
}

// SetupEnv sets the environment variables for a test
// and returns a function to restore their previous values
func SetupEnv(vars map[string]string) func() {
	orig := make(map[string]*string, len(vars))
	for key, value := range vars {
		if prev, ok := os.LookupEnv(key); ok {
			orig[key] = &prev
		} else {
			orig[key] = nil
		}
		_ = os.Setenv(key, value)
	}

	return func() {
		for key, prev := range orig {
			if prev == nil {
				_ = os.Unsetenv(key)
			} else {
				_ = os.Setenv(key, *prev)
			}
		}
	}
}
