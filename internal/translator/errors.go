package translator

import "errors"

// Kind classifies a TranslateError.
type Kind int

const (
	// KindTransport covers everything up to and including the HTTP exchange:
	// DNS, connect, TLS, timeouts and non-2xx statuses.
	KindTransport Kind = iota + 1
	// KindParse covers bodies that are not UTF-8, not JSON, or lack
	// a string translatedText field.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is.
var (
	ErrTransport = errors.New("transport error")
	ErrParse     = errors.New("parse error")
)

// TranslateError is the only error type Client.Translate returns.
type TranslateError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *TranslateError) Error() string {
	switch e.Kind {
	case KindTransport:
		return "HTTP Request Error: " + e.Message
	case KindParse:
		return "JSON Parsing Error: " + e.Message
	default:
		return e.Message
	}
}

func (e *TranslateError) Unwrap() error {
	return e.Err
}

func (e *TranslateError) Is(target error) bool {
	switch target {
	case ErrTransport:
		return e.Kind == KindTransport
	case ErrParse:
		return e.Kind == KindParse
	}
	return false
}

func transportError(err error) *TranslateError {
	return &TranslateError{Kind: KindTransport, Message: err.Error(), Err: err}
}

func parseError(err error) *TranslateError {
	return &TranslateError{Kind: KindParse, Message: err.Error(), Err: err}
}

// IsTransport reports whether err is a transport-level TranslateError.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsParse reports whether err is a response-parsing TranslateError.
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// KindOf returns the Kind of the first TranslateError in err's chain, or 0.
func KindOf(err error) Kind {
	var te *TranslateError
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}
