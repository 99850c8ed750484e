package gwcli

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultConfigDir is the default location for gcalcli configuration
	DefaultConfigDir = "~/.config/gcalcli"

	credentialsFile = "credentials.json"
	tokenFile       = "token.json"
	settingsFile    = "config.yaml"
)

// ConfigPaths holds paths to all config files
type ConfigPaths struct {
	Dir         string
	Credentials string
	Token       string
	Settings    string
}

// GetConfigPaths returns the config paths, expanding ~ if needed
func GetConfigPaths(configDir string) (*ConfigPaths, error) {
	if configDir == "" {
		configDir = DefaultConfigDir
	}

	// Expand ~
	if len(configDir) > 0 && configDir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		configDir = filepath.Join(home, configDir[1:])
	}

	return &ConfigPaths{
		Dir:         configDir,
		Credentials: filepath.Join(configDir, credentialsFile),
		Token:       filepath.Join(configDir, tokenFile),
		Settings:    filepath.Join(configDir, settingsFile),
	}, nil
}

// Apply overrides the credential and token paths from settings. Relative
// names are resolved against the config directory.
func (p *ConfigPaths) Apply(s Settings) {
	if s.CredentialsFile != "" {
		p.Credentials = p.resolve(s.CredentialsFile)
	}
	if s.TokenFile != "" {
		p.Token = p.resolve(s.TokenFile)
	}
}

func (p *ConfigPaths) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.Dir, name)
}

func credentialsHelp(path string) error {
	return fmt.Errorf(`credentials not found at %s

To set up authentication:
1. Go to https://console.developers.google.com
2. Create a new project (or select existing)
3. Enable the Google Calendar API
4. Create OAuth 2.0 Client ID (Desktop app)
5. Download the credentials JSON file
6. Save it to: %s

Scope needed:
- https://www.googleapis.com/auth/calendar
`, path, path)
}
