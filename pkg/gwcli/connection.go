package gwcli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/pkg/browser"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"

	"github.com/wesnick/gcalcli/pkg/gwcli/oauth"
)

const (
	// PrimaryCalendar is the only calendar operated on.
	PrimaryCalendar = "primary"

	// UpcomingLimit caps the number of events fetched for display.
	UpcomingLimit = 20
)

var (
	// Version is the app version as reported in RPCs.
	Version = "unspecified"

	// LogRPC logs all RPCs.
	LogRPC bool
)

// CmdG holds the authenticated Calendar client of one operation.
type CmdG struct {
	authedClient *http.Client
	calendar     *calendar.Service
}

func userAgent() string {
	return "gcalcli " + Version
}

// NewFake creates a fake client, used for testing.
func NewFake(client *http.Client) (*CmdG, error) {
	conn := &CmdG{
		authedClient: client,
	}
	return conn, conn.setupClients()
}

// New resolves the config directory, obtains a valid token (authorizing
// interactively if needed) and builds the Calendar client. Instructions for
// the user are written to out.
func New(ctx context.Context, configDir string, out io.Writer) (*CmdG, error) {
	mgr, auth, _, err := newCredentialManager(configDir, out)
	if err != nil {
		return nil, err
	}

	tok, err := mgr.Token(ctx)
	if err != nil {
		return nil, err
	}

	conn := &CmdG{
		authedClient: auth.Config("").Client(ctx, tok),
	}
	log.Debugf("OAuth connection ready")
	return conn, conn.setupClients()
}

// Configure runs the authorization flow unconditionally and rewrites the
// token cache.
func Configure(ctx context.Context, configDir string, out io.Writer) (string, error) {
	mgr, _, paths, err := newCredentialManager(configDir, out)
	if err != nil {
		return "", err
	}
	if _, err := mgr.Reauthorize(ctx); err != nil {
		return "", err
	}
	return paths.Token, nil
}

func newCredentialManager(configDir string, out io.Writer) (*CredentialManager, *oauth.Authenticator, *ConfigPaths, error) {
	paths, err := GetConfigPaths(configDir)
	if err != nil {
		return nil, nil, nil, err
	}

	settings, err := LoadSettings(paths.Settings)
	if err != nil {
		return nil, nil, nil, err
	}
	paths.Apply(settings)
	if settings.LogRPC {
		LogRPC = true
	}

	log.Debugf("Config paths resolved:")
	log.Debugf("  Directory: %s", paths.Dir)
	log.Debugf("  Credentials: %s", paths.Credentials)
	log.Debugf("  Token: %s", paths.Token)
	log.Debugf("  Settings: %s", paths.Settings)

	if err := os.MkdirAll(paths.Dir, 0700); err != nil {
		return nil, nil, nil, errors.Wrap(err, "creating config directory")
	}

	credFile, err := os.Open(paths.Credentials)
	if err != nil {
		return nil, nil, nil, credentialsHelp(paths.Credentials)
	}
	defer credFile.Close()

	auth, err := oauth.NewAuthenticator(credFile)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "creating authenticator")
	}

	flow := &LocalServerFlow{
		Auth: auth,
		Port: settings.OAuthPort,
		Out:  out,
	}
	if settings.OpenBrowser {
		flow.Open = browser.OpenURL
	}

	return &CredentialManager{
		Store: &FileCredentialStore{Path: paths.Token, Config: auth.Config("")},
		Flow:  flow,
	}, auth, paths, nil
}

func (c *CmdG) setupClients() error {
	var err error
	c.calendar, err = calendar.New(c.authedClient)
	if err != nil {
		return errors.Wrap(err, "creating Calendar client")
	}
	c.calendar.UserAgent = userAgent()
	return nil
}

// CalendarService returns the Google Calendar API service client.
func (c *CmdG) CalendarService() *calendar.Service {
	return c.calendar
}

// ListUpcoming returns up to UpcomingLimit single events of the primary
// calendar starting at or after timeMin, in server start-time order.
func (c *CmdG) ListUpcoming(ctx context.Context, timeMin time.Time) ([]*calendar.Event, error) {
	since := timeMin.UTC().Format(time.RFC3339)
	var items []*calendar.Event
	err := wrapLogRPC("calendar.Events.List", func() error {
		resp, err := c.calendar.Events.List(PrimaryCalendar).
			TimeMin(since).
			MaxResults(UpcomingLimit).
			SingleEvents(true).
			OrderBy("startTime").
			Context(ctx).
			Do()
		if err == nil {
			items = resp.Items
		}
		return err
	}, "calendar=%q timeMin=%q", PrimaryCalendar, since)
	return items, Classify("list", err)
}

// InsertEvent creates ev in the primary calendar.
func (c *CmdG) InsertEvent(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	var created *calendar.Event
	err := wrapLogRPC("calendar.Events.Insert", func() (err error) {
		created, err = c.calendar.Events.Insert(PrimaryCalendar, ev).Context(ctx).Do()
		return
	}, "calendar=%q summary=%q", PrimaryCalendar, ev.Summary)
	return created, Classify("insert", err)
}

// UpdateEvent replaces the event ev.Id with ev.
func (c *CmdG) UpdateEvent(ctx context.Context, ev *calendar.Event) (*calendar.Event, error) {
	var updated *calendar.Event
	err := wrapLogRPC("calendar.Events.Update", func() (err error) {
		updated, err = c.calendar.Events.Update(PrimaryCalendar, ev.Id, ev).Context(ctx).Do()
		return
	}, "calendar=%q id=%q", PrimaryCalendar, ev.Id)
	return updated, Classify("update", err)
}

// DeleteEvent removes the event id.
func (c *CmdG) DeleteEvent(ctx context.Context, id string) error {
	err := wrapLogRPC("calendar.Events.Delete", func() error {
		return c.calendar.Events.Delete(PrimaryCalendar, id).Context(ctx).Do()
	}, "calendar=%q id=%q", PrimaryCalendar, id)
	return Classify("delete", err)
}

func wrapLogRPC(fn string, cb func() error, af string, args ...interface{}) error {
	st := time.Now()
	err := cb()
	logRPC(st, err, fmt.Sprintf("%s(%s)", fn, af), args...)
	return err
}

func logRPC(st time.Time, err error, s string, args ...interface{}) {
	if LogRPC {
		log.Infof("RPC> %s => %v %v", fmt.Sprintf(s, args...), err, time.Since(st))
	}
}
