package inq

import (
	"fmt"
	"strings"
)

// ConfigurationError reports misuse of the registration or mutation API:
// an unregistered or foreign kind, a shape conflict, Set on a derived kind,
// or Set from inside a computation.
type ConfigurationError struct {
	Kind string
	Msg  string
}

func configErrf(kind string, format string, args ...any) error {
	return &ConfigurationError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	if e.Kind == "" {
		return e.Msg
	}
	return e.Kind + ": " + e.Msg
}

// NotFoundError reports a read of an input key that has never been set.
type NotFoundError struct {
	Ref Ref
}

func (e *NotFoundError) Error() string {
	return e.Ref.String() + ": input never set"
}

// CycleError reports cyclic demand: a (kind, key) pair was demanded while
// already active on the same handle's call chain. Path starts at the first
// occurrence of the repeated pair and ends with its repetition.
type CycleError struct {
	Path []Ref
}

func (e *CycleError) Error() string {
	var buf strings.Builder
	buf.WriteString("query cycle: ")
	for i, ref := range e.Path {
		if i > 0 {
			buf.WriteString(" -> ")
		}
		buf.WriteString(ref.String())
	}
	return buf.String()
}
