package gwcli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesnick/gcalcli/pkg/gwcli/oauth"
)

// tokenServer answers authorization_code and refresh_token grants.
func tokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		switch r.PostForm.Get("grant_type") {
		case "authorization_code":
			if r.PostForm.Get("code") != "the-code" || r.PostForm.Get("code_verifier") == "" {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error":"invalid_grant"}`)
				return
			}
			fmt.Fprint(w, `{"access_token":"authorized","token_type":"Bearer","refresh_token":"rt","expires_in":3600}`)
		case "refresh_token":
			if r.PostForm.Get("refresh_token") != "rt" {
				w.WriteHeader(http.StatusBadRequest)
				fmt.Fprint(w, `{"error":"invalid_grant"}`)
				return
			}
			fmt.Fprint(w, `{"access_token":"refreshed","token_type":"Bearer","expires_in":3600}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func testAuthenticator(t *testing.T, tokenURL string) *oauth.Authenticator {
	t.Helper()
	creds := fmt.Sprintf(`{
		"installed": {
			"client_id": "client-id",
			"client_secret": "client-secret",
			"auth_uri": "https://accounts.example.com/auth",
			"token_uri": %q,
			"redirect_uris": ["http://localhost"]
		}
	}`, tokenURL)
	auth, err := oauth.NewAuthenticator(strings.NewReader(creds))
	require.NoError(t, err)
	return auth
}

// redirectBrowser plays the user: it follows the consent URL straight back
// to the redirect URI with the given code and state.
func redirectBrowser(code string, state func(string) string) func(string) error {
	return func(authURL string) error {
		u, err := url.Parse(authURL)
		if err != nil {
			return err
		}
		q := u.Query()
		back := url.Values{"code": {code}, "state": {state(q.Get("state"))}}
		resp, err := http.Get(q.Get("redirect_uri") + "?" + back.Encode())
		if err != nil {
			return err
		}
		io.Copy(io.Discard, resp.Body)
		return resp.Body.Close()
	}
}

func sameState(s string) string { return s }

func TestLocalServerFlowAuthorize(t *testing.T) {
	ts := tokenServer(t)
	var out bytes.Buffer
	flow := &LocalServerFlow{
		Auth: testAuthenticator(t, ts.URL+"/token"),
		Open: redirectBrowser("the-code", sameState),
		Out:  &out,
	}

	tok, err := flow.Authorize(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "authorized", tok.AccessToken)
	assert.Equal(t, "rt", tok.RefreshToken)
	assert.Contains(t, out.String(), "https://accounts.example.com/auth?")
	assert.Contains(t, out.String(), "access_type=offline")
	assert.Contains(t, out.String(), "code_challenge_method=S256")
}

func TestLocalServerFlowStateMismatch(t *testing.T) {
	ts := tokenServer(t)
	flow := &LocalServerFlow{
		Auth: testAuthenticator(t, ts.URL+"/token"),
		Open: redirectBrowser("the-code", func(string) string { return "forged" }),
		Out:  io.Discard,
	}

	_, err := flow.Authorize(context.Background())
	assert.ErrorContains(t, err, "state mismatch")
}

func TestLocalServerFlowExchangeFailure(t *testing.T) {
	ts := tokenServer(t)
	flow := &LocalServerFlow{
		Auth: testAuthenticator(t, ts.URL+"/token"),
		Open: redirectBrowser("wrong-code", sameState),
		Out:  io.Discard,
	}

	_, err := flow.Authorize(context.Background())
	assert.ErrorContains(t, err, "unable to retrieve token from web")
}

func TestLocalServerFlowCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	flow := &LocalServerFlow{
		Auth: testAuthenticator(t, "http://127.0.0.1:1/token"),
		Out:  io.Discard,
	}

	_, err := flow.Authorize(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileCredentialStoreRefresh(t *testing.T) {
	ts := tokenServer(t)
	auth := testAuthenticator(t, ts.URL+"/token")
	store := &FileCredentialStore{Config: auth.Config("")}

	fresh, err := store.Refresh(context.Background(), expiredToken("rt"))
	require.NoError(t, err)

	assert.Equal(t, "refreshed", fresh.AccessToken)
	assert.Equal(t, "rt", fresh.RefreshToken, "refresh token must be kept when the server omits it")
	assert.True(t, store.IsValid(fresh))

	_, err = store.Refresh(context.Background(), expiredToken("revoked"))
	assert.Error(t, err)

	_, err = store.Refresh(context.Background(), expiredToken(""))
	assert.Error(t, err)
}
