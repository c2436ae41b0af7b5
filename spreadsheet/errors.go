package spreadsheet

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
)

// Kind classifies a failed append. Callers currently collapse every kind into a
// single user facing reply but the classification is kept for logging and for any
// later retry policy.
type Kind int

const (
	Unknown Kind = iota
	Auth
	NotFound
	Transient
)

var ErrNotFound = errors.New("not found")

func (k Kind) String() string {
	switch k {
	case Auth:
		return "auth"
	case NotFound:
		return "not-found"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// WriteError is returned by Append for any failure along the authorise, open and
// append chain.
type WriteError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %v (%v)", e.Op, e.Err, e.Kind)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a WriteError anywhere in the chain, Unknown otherwise.
func KindOf(err error) Kind {
	var werr *WriteError
	if errors.As(err, &werr) {
		return werr.Kind
	}

	return Unknown
}

func fail(op string, err error) error {
	return &WriteError{
		Kind: classify(err),
		Op:   op,
		Err:  err,
	}
}

func classify(err error) Kind {
	var gerr *googleapi.Error
	var rerr *oauth2.RetrieveError
	var perr *os.PathError
	var uerr *url.Error
	var nerr net.Error

	switch {
	case err == nil:
		return Unknown

	case errors.Is(err, ErrNotFound):
		return NotFound

	case errors.As(err, &rerr), errors.As(err, &perr):
		return Auth

	case errors.As(err, &gerr):
		switch {
		case gerr.Code == 401 || gerr.Code == 403:
			return Auth
		case gerr.Code == 404:
			return NotFound
		case gerr.Code == 429 || gerr.Code >= 500:
			return Transient
		}

		return Unknown

	case errors.As(err, &uerr), errors.As(err, &nerr):
		return Transient
	}

	return Unknown
}
