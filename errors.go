package cmdtree

import (
	"fmt"
	"strings"
)

// DuplicateNameError is returned when registration would add a child with
// a name already present among its siblings. The tree is left unmodified.
type DuplicateNameError struct {
	// Name is the colliding child name.
	Name string

	// Path locates the parent the registration was attempted under;
	// empty for the root.
	Path string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("command %q already registered under %s", e.Name, displayPath(e.Path))
}

// InvalidArityError is returned at registration time when a supplied
// AritySpec is internally inconsistent. It is never produced by dispatch.
type InvalidArityError struct {
	Reason string
}

func (e *InvalidArityError) Error() string {
	return "invalid arity specification: " + e.Reason
}

// UnknownCommandError is returned by Dispatch when a path segment does not
// name any child of the node resolution stopped at.
type UnknownCommandError struct {
	// Token is the first segment that failed to resolve.
	Token string

	// Path locates the node the token was looked up under; empty for
	// the root.
	Path string

	// Valid lists the child names available at that node, in
	// registration order.
	Valid []string
}

func (e *UnknownCommandError) Error() string {
	if len(e.Valid) == 0 {
		return fmt.Sprintf("unknown command %q under %s", e.Token, displayPath(e.Path))
	}
	return fmt.Sprintf("unknown command %q under %s (valid: %s)",
		e.Token, displayPath(e.Path), strings.Join(e.Valid, ", "))
}

// NotInvocableError is returned by Dispatch when the tokens resolved to a
// group with no bound handler.
type NotInvocableError struct {
	Path string
}

func (e *NotInvocableError) Error() string {
	return fmt.Sprintf("%s is a command group, not an invocable command", displayPath(e.Path))
}

// ArityMismatchError is returned by Dispatch when the leaf resolved but
// the number of remaining tokens is not accepted by its policy.
type ArityMismatchError struct {
	Path   string
	Got    int
	Policy ArityPolicy
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%s expects %s argument(s), received %d", displayPath(e.Path), e.Policy, e.Got)
}

// HandlerError wraps a failure from the invoked handler itself, including
// downstream value-coercion failures. The original cause is preserved.
type HandlerError struct {
	Path string
	Err  error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: %v", displayPath(e.Path), e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// Cause supports github.com/pkg/errors.Cause.
func (e *HandlerError) Cause() error { return e.Err }

func displayPath(path string) string {
	if path == "" {
		return "the root"
	}
	return fmt.Sprintf("%q", path)
}
