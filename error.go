package console

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// NewError creates a new error with the given error code and error.
func NewError(code ErrorCode, err error) error {
	return &Error{code: code, err: err}
}

// ErrorCode represents an error code for a specific error type.
type ErrorCode int

const (
	ErrShowHelp ErrorCode = iota + 1
	ErrInvalidInput
)

func (c ErrorCode) String() string {
	return convertErrorCode(c)
}

func convertErrorCode(code ErrorCode) string {
	switch code {
	case ErrShowHelp:
		return "show help"
	case ErrInvalidInput:
		return "invalid input"
	default:
		return "unknown error"
	}
}

// Error represents an error with an error code and an underlying error.
type Error struct {
	code ErrorCode
	err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.err == nil {
		return convertErrorCode(e.code) + ": <nil>"
	}
	return e.err.Error()
}

func (e *Error) Unwrap() error { return e.err }

// Code returns the error code.
func (e *Error) Code() ErrorCode { return e.code }

// ExitError carries a non-zero status code returned by a command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// InvalidInputError is returned when command-line input does not match the command
// definition.
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

// NearMissError is returned by a value resolver that recognizes a parameter but cannot
// produce a value for it. The argument resolver keeps trying the remaining resolvers and
// includes the reason in its final error if none succeeds.
type NearMissError struct {
	Reason string
}

func (e *NearMissError) Error() string { return e.Reason }

// NearMiss returns a [NearMissError] with a formatted reason.
func NearMiss(format string, args ...any) error {
	return &NearMissError{Reason: fmt.Sprintf(format, args...)}
}

// ResolverNotFoundError is returned when a member pins a resolver name that is not registered.
type ResolverNotFoundError struct {
	Name string
	// Known lists the registered names when the locator exposes them.
	Known []string
	// Suggestions are registered names similar to Name.
	Suggestions []string
}

func (e *ResolverNotFoundError) Error() string {
	msg := fmt.Sprintf("you requested a non-existent resolver %q", e.Name)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(". Did you mean one of these?\n\t%s", strings.Join(e.Suggestions, "\n\t"))
	} else if len(e.Known) > 0 {
		msg += fmt.Sprintf(". Available resolvers: %s", quoteJoin(e.Known))
	}
	return msg
}

// AmbiguousResolverError is returned when a member pins more than one resolver.
type AmbiguousResolverError struct {
	Command string
	Member  string
}

func (e *AmbiguousResolverError) Error() string {
	return fmt.Sprintf("parameter %q of command %q may only pin one resolver", e.Member, e.Command)
}

// ArityError is returned when a resolver produces more than one value for a non-variadic
// member.
type ArityError struct {
	Command  string
	Member   string
	Resolver string
	Count    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s returned %d values for parameter %q of command %q, only one is allowed",
		e.Resolver, e.Count, e.Member, e.Command)
}

// UnresolvableParameterError is returned when no resolver produced a value for a member.
type UnresolvableParameterError struct {
	Command string
	Member  string
	// Reasons collects the near-miss reasons reported while resolving the member.
	Reasons []string
}

func (e *UnresolvableParameterError) Error() string {
	if len(e.Reasons) > 0 {
		if len(e.Reasons) == 1 {
			return fmt.Sprintf("could not resolve parameter %q of command %q: %s", e.Member, e.Command, e.Reasons[0])
		}
		return fmt.Sprintf("could not resolve parameter %q of command %q:\n  - %s",
			e.Member, e.Command, strings.Join(e.Reasons, "\n  - "))
	}
	return fmt.Sprintf("could not resolve parameter %q of command %q. "+
		"Did you forget to add an Argument, Option or MapInput marker, or to register a resolver for its type?",
		e.Member, e.Command)
}

// ReturnTypeError is returned when a command function returns something other than an int
// status code.
type ReturnTypeError struct {
	Command string
	Type    reflect.Type
}

func (e *ReturnTypeError) Error() string {
	got := "nothing"
	if e.Type != nil {
		got = e.Type.String()
	}
	return fmt.Sprintf("return value of command %q must be of type int, %s returned", e.Command, got)
}

func quoteJoin(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, strconv.Quote(n))
	}
	return strings.Join(quoted, ", ")
}
