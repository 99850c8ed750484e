// Package oauth builds the OAuth2 client configuration for the Calendar API
// and (de)serializes the cached token.
package oauth

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// Scopes requested from the user. Full calendar access is the only one.
var Scopes = []string{calendar.CalendarScope}

// NewAuthenticator creates an Authenticator from credentials JSON file contents.
//
// Credentials can be obtained by creating a new OAuth client ID (Desktop app)
// at the Google API console https://console.developers.google.com/apis/credentials.
func NewAuthenticator(credentials io.Reader) (*Authenticator, error) {
	cfg, err := clientFromCredentials(credentials)
	if err != nil {
		return nil, fmt.Errorf("creating config from credentials: %w", err)
	}
	return &Authenticator{cfg: cfg}, nil
}

// Authenticator wraps the OAuth2 client configuration of the installed app.
type Authenticator struct {
	cfg *oauth2.Config
}

// Config returns a copy of the OAuth2 config with redirectURL applied.
func (a *Authenticator) Config(redirectURL string) *oauth2.Config {
	c := *a.cfg
	c.RedirectURL = redirectURL
	return &c
}

func clientFromCredentials(credentials io.Reader) (*oauth2.Config, error) {
	credBytes, err := io.ReadAll(credentials)
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	return google.ConfigFromJSON(credBytes, Scopes...)
}

// ParseToken decodes a token JSON document.
func ParseToken(token io.Reader) (*oauth2.Token, error) {
	tok := &oauth2.Token{}
	err := json.NewDecoder(token).Decode(tok)
	return tok, err
}

// EncodeToken writes a token JSON document.
func EncodeToken(w io.Writer, tok *oauth2.Token) error {
	return json.NewEncoder(w).Encode(tok)
}

// GenerateState returns a random value for the OAuth state parameter.
func GenerateState() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		// We can't really afford errors in secure random number generation.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
