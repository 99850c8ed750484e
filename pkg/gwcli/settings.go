package gwcli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Settings is the optional config.yaml in the config directory.
type Settings struct {
	// OAuthPort is the local port the authorization redirect lands on. 0
	// picks any free port.
	OAuthPort int `yaml:"oauth_port"`
	// OpenBrowser launches the system browser on the consent URL.
	OpenBrowser bool `yaml:"open_browser"`
	// LogRPC logs every Calendar API call.
	LogRPC bool `yaml:"log_rpc"`

	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
}

// DefaultSettings returns the settings used when no config.yaml exists.
func DefaultSettings() Settings {
	return Settings{
		OpenBrowser:     true,
		CredentialsFile: credentialsFile,
		TokenFile:       tokenFile,
	}
}

// LoadSettings reads path over the defaults. A missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, errors.Wrapf(err, "reading settings %q", path)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "parsing settings %q", path)
	}
	return s, s.Validate()
}

// Validate reports every invalid field at once.
func (s Settings) Validate() error {
	var res error
	if s.OAuthPort < 0 || s.OAuthPort > 65535 {
		res = multierror.Append(res, fmt.Errorf("oauth_port %d out of range", s.OAuthPort))
	}
	if s.CredentialsFile == "" {
		res = multierror.Append(res, errors.New("credentials_file is empty"))
	}
	if s.TokenFile == "" {
		res = multierror.Append(res, errors.New("token_file is empty"))
	}
	return res
}
