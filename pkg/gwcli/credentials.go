package gwcli

import (
	"context"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/wesnick/gcalcli/pkg/gwcli/oauth"
)

// ErrNoCredential is returned by CredentialStore.Load when nothing is cached.
var ErrNoCredential = errors.New("no cached credential")

// CredentialStore persists the OAuth token between runs.
type CredentialStore interface {
	// Load returns the cached token, or ErrNoCredential.
	Load() (*oauth2.Token, error)
	// Save replaces the cached token.
	Save(tok *oauth2.Token) error
	// IsValid reports whether tok can authorize requests as is.
	IsValid(tok *oauth2.Token) bool
	// Refresh exchanges the refresh token of tok for a new token.
	Refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error)
}

// Authorizer obtains a brand new token from the user.
type Authorizer interface {
	Authorize(ctx context.Context) (*oauth2.Token, error)
}

// FileCredentialStore keeps the token as JSON in a single file.
type FileCredentialStore struct {
	Path   string
	Config *oauth2.Config
}

// Load implements CredentialStore.
func (s *FileCredentialStore) Load() (*oauth2.Token, error) {
	f, err := os.Open(s.Path)
	if os.IsNotExist(err) {
		return nil, ErrNoCredential
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening token %q", s.Path)
	}
	defer f.Close()

	tok, err := oauth.ParseToken(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing token %q", s.Path)
	}
	return tok, nil
}

// Save implements CredentialStore. Any previous content is overwritten.
func (s *FileCredentialStore) Save(tok *oauth2.Token) error {
	f, err := os.OpenFile(s.Path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return errors.Wrapf(err, "creating token file %q", s.Path)
	}
	if err := oauth.EncodeToken(f, tok); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing token %q", s.Path)
	}
	return f.Close()
}

// IsValid implements CredentialStore.
func (s *FileCredentialStore) IsValid(tok *oauth2.Token) bool {
	return tok.Valid()
}

// Refresh implements CredentialStore.
func (s *FileCredentialStore) Refresh(ctx context.Context, tok *oauth2.Token) (*oauth2.Token, error) {
	if tok.RefreshToken == "" {
		return nil, errors.New("token has no refresh token")
	}
	// Drop the access token so the source is forced to hit the token endpoint.
	stale := &oauth2.Token{RefreshToken: tok.RefreshToken}
	fresh, err := s.Config.TokenSource(ctx, stale).Token()
	if err != nil {
		return nil, errors.Wrap(err, "refreshing token")
	}
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = tok.RefreshToken
	}
	return fresh, nil
}

// CredentialManager runs the load, refresh, authorize and save lifecycle.
type CredentialManager struct {
	Store CredentialStore
	Flow  Authorizer
}

// Token returns a valid token. A renewed token, whether refreshed or newly
// authorized, replaces the cached one.
func (m *CredentialManager) Token(ctx context.Context) (*oauth2.Token, error) {
	tok, err := m.Store.Load()
	if err != nil && err != ErrNoCredential {
		return nil, err
	}

	renewed := false
	if tok != nil && !m.Store.IsValid(tok) && tok.RefreshToken != "" {
		log.Debugf("Cached token expired, refreshing")
		fresh, err := m.Store.Refresh(ctx, tok)
		if err != nil {
			log.Warnf("Token refresh failed, re-authorizing: %v", err)
		} else {
			tok, renewed = fresh, true
		}
	}

	if tok == nil || !m.Store.IsValid(tok) {
		log.Debugf("No valid token, starting authorization")
		tok, err = m.Flow.Authorize(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "authorizing")
		}
		renewed = true
	}

	if renewed {
		if err := m.Store.Save(tok); err != nil {
			return nil, err
		}
	}
	return tok, nil
}

// Reauthorize discards any cached token and runs the authorization flow.
func (m *CredentialManager) Reauthorize(ctx context.Context) (*oauth2.Token, error) {
	tok, err := m.Flow.Authorize(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "authorizing")
	}
	return tok, m.Store.Save(tok)
}
