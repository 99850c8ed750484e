package gwcli

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/wesnick/gcalcli/pkg/gwcli/oauth"
)

// LocalServerFlow is the installed-app authorization: the user consents in a
// browser and the provider redirects to a listener on localhost.
type LocalServerFlow struct {
	Auth *oauth.Authenticator
	// Port to listen on. 0 picks any free port.
	Port int
	// Open is called with the consent URL. Nil only prints it.
	Open func(url string) error
	// Out receives the instructions for the user.
	Out io.Writer
}

type callbackResult struct {
	code string
	err  error
}

// Authorize implements Authorizer. It blocks until the redirect arrives or
// ctx is done.
func (f *LocalServerFlow) Authorize(ctx context.Context) (*oauth2.Token, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", f.Port))
	if err != nil {
		return nil, errors.Wrap(err, "opening local redirect listener")
	}

	redirectURL := fmt.Sprintf("http://localhost:%d/", ln.Addr().(*net.TCPAddr).Port)
	cfg := f.Auth.Config(redirectURL)
	state := oauth.GenerateState()
	verifier := oauth2.GenerateVerifier()

	results := make(chan callbackResult, 1)
	srv := &http.Server{Handler: callbackHandler(state, results)}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			deliver(results, callbackResult{err: err})
		}
	}()
	defer srv.Shutdown(context.Background())

	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintf(f.Out, "\nGo to the following link in your browser:\n\n%s\n\n", authURL)
	if f.Open != nil {
		if err := f.Open(authURL); err != nil {
			log.Debugf("Could not open browser: %v", err)
		}
	}
	fmt.Fprintln(f.Out, "Waiting for authorization...")

	var res callbackResult
	select {
	case res = <-results:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.err != nil {
		return nil, res.err
	}

	tok, err := cfg.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, errors.Wrap(err, "unable to retrieve token from web")
	}
	return tok, nil
}

func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if msg := q.Get("error"); msg != "" {
			http.Error(w, "Authorization failed: "+msg, http.StatusBadRequest)
			deliver(results, callbackResult{err: errors.Errorf("authorization failed: %s", msg)})
			return
		}
		if q.Get("state") != state {
			http.Error(w, "Authorization failed: state mismatch", http.StatusBadRequest)
			deliver(results, callbackResult{err: errors.New("authorization failed: state mismatch")})
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "Authorization failed: missing code", http.StatusBadRequest)
			deliver(results, callbackResult{err: errors.New("authorization failed: missing code")})
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Authorization complete. You can close this window and return to the terminal.")
		deliver(results, callbackResult{code: code})
	})
}

// deliver keeps only the first result; later redirects are dropped.
func deliver(results chan<- callbackResult, res callbackResult) {
	select {
	case results <- res:
	default:
	}
}
