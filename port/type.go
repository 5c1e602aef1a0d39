package port

import "fmt"

// ParseReason classifies why a port specification was rejected.
type ParseReason string

const (
	ReasonMalformed   ParseReason = "malformed"
	ReasonOutOfRange  ParseReason = "out-of-range"
	ReasonEmptyResult ParseReason = "empty-result"
)

// ParseError reports an invalid port specification. Token holds the
// offending part of the input when one can be identified.
type ParseError struct {
	Reason ParseReason
	Token  string
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("invalid port spec: %s", e.Reason)
	}
	return fmt.Sprintf("invalid port spec: %s: %q", e.Reason, e.Token)
}
