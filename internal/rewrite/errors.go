package rewrite

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a rewrite failure so callers can branch without parsing
// message strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindMethodNotAllowed
	KindConfiguration
	KindUpstream
	KindEmptyResult
	// KindTransport covers network failures and malformed JSON at any stage.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindConfiguration:
		return "configuration"
	case KindUpstream:
		return "upstream"
	case KindEmptyResult:
		return "empty_result"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Status returns the HTTP status code reported to the caller for this kind.
func (k Kind) Status() int {
	if k == KindMethodNotAllowed {
		return http.StatusMethodNotAllowed
	}
	return http.StatusInternalServerError
}

const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgNoText           = "No text returned from AI"
	MsgUpstreamFallback = "Upstream provider returned an error"
)

// Error is a classified failure. Message is returned to the caller verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds an Error of the given kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err, keeping its text as the caller-visible message.
// If err already carries an *Error anywhere in its chain, that *Error is
// returned so its kind and message survive intermediate wrapping.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var re *Error
	if errors.As(err, &re) {
		return re
	}
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}

// Upstream reports a provider-side error, falling back to a generic message
// when the provider supplied none.
func Upstream(msg string) *Error {
	if msg == "" {
		msg = MsgUpstreamFallback
	}
	return &Error{Kind: KindUpstream, Message: msg}
}

// EmptyResult reports a successful upstream call that carried no text.
func EmptyResult() *Error {
	return &Error{Kind: KindEmptyResult, Message: MsgNoText}
}

// MissingCredential reports an unset provider credential by variable name.
func MissingCredential(envVar string) *Error {
	return Errorf(KindConfiguration, "Server Config Error: %s missing", envVar)
}

// KindOf returns the kind of err, or KindUnknown for unclassified errors.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindUnknown
}
