package sources

import (
	"errors"
	"fmt"
)

// ErrorKind classifies fetch failures.
type ErrorKind string

const (
	// KindNetwork covers transport failures and non-success HTTP statuses.
	KindNetwork ErrorKind = "network"
	// KindParse means the response body yielded zero usable records.
	KindParse ErrorKind = "parse"
)

// FetchError describes a failed fetch of one data source.
type FetchError struct {
	Kind       ErrorKind
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "fetch error"
	}

	base := fmt.Sprintf("%s error", e.Kind)
	if e.Source != "" {
		base = fmt.Sprintf("%s fetching %s", base, e.Source)
	}
	if e.StatusCode > 0 {
		base = fmt.Sprintf("%s (status %d)", base, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", base, e.Err)
	}
	return base
}

func (e *FetchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func networkError(source string, status int, err error) error {
	return &FetchError{Kind: KindNetwork, Source: source, StatusCode: status, Err: err}
}

func parseError(source string, err error) error {
	return &FetchError{Kind: KindParse, Source: source, Err: err}
}

// IsKind reports whether err is a FetchError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr.Kind == kind
	}
	return false
}

// Sentinel errors wrapped by parse failures.
var (
	ErrNoValidRows      = errors.New("no valid rows")
	ErrMissingColumn    = errors.New("missing required column")
	ErrBodyTooLarge     = errors.New("response exceeds byte limit")
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")
)
