package gwcli

import (
	"context"
	"net"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// ErrorKind groups remote failures by what the user can do about them.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindAuth
	KindNotFound
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network error"
	case KindAuth:
		return "authorization error"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "rejected request"
	}
	return "error"
}

// Error is a classified failure of a Calendar API call.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Classify wraps err from the call op into an *Error. nil stays nil.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var already *Error
	if errors.As(err, &already) {
		return err
	}
	return &Error{Kind: kindOf(err), Op: op, Err: err}
}

// KindOf returns the kind of a classified error, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func kindOf(err error) ErrorKind {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return KindAuth
		case http.StatusNotFound, http.StatusGone:
			return KindNotFound
		case http.StatusBadRequest, http.StatusConflict, http.StatusPreconditionFailed:
			return KindValidation
		}
		return KindUnknown
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return KindAuth
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindNetwork
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return KindNetwork
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return KindNetwork
	}
	return KindUnknown
}
