package ontic

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeInvalidEnum   = "invalid_enum"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodePattern       = "pattern"
	CodeInvalidFormat = "invalid_format"
	// Document decoding
	CodeDuplicateKey = "duplicate_key"
	CodeParseError   = "parse_error"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /age/min).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"min":1, "got":0})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation entries in discovery order.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /age/required
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages returns the human-readable message of every issue, in order.
func (iss Issues) Messages() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Message
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error chain.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ErrArgument is matched by every precondition failure via errors.Is.
var ErrArgument = errors.New("ontic: invalid argument")

// ArgumentError reports programmer misuse: a missing argument or an argument
// of the wrong kind. It is never aggregated.
type ArgumentError struct {
	Arg     string
	Message string
}

func (e *ArgumentError) Error() string { return e.Message }

// Is reports whether target is ErrArgument.
func (e *ArgumentError) Is(target error) bool { return target == ErrArgument }

func argError(arg, format string, a ...any) *ArgumentError {
	return &ArgumentError{Arg: arg, Message: fmt.Sprintf(format, a...)}
}

// ValidationError is the aggregate error raised when a schema or an object
// fails validation. It carries every violation found, in discovery order.
type ValidationError struct {
	issues Issues
}

func newValidationError(iss Issues) *ValidationError {
	cp := make(Issues, len(iss))
	copy(cp, iss)
	return &ValidationError{issues: cp}
}

// ValidationErrors returns a copy of the violation messages.
func (e *ValidationError) ValidationErrors() []string { return e.issues.Messages() }

// Issues returns a copy of the tagged issues behind the messages.
func (e *ValidationError) Issues() Issues {
	cp := make(Issues, len(e.issues))
	copy(cp, e.issues)
	return cp
}

func (e *ValidationError) Error() string {
	msgs := e.issues.Messages()
	if len(msgs) == 1 {
		return msgs[0]
	}
	return fmt.Sprintf("%d validation errors: %s", len(msgs), strings.Join(msgs, "; "))
}

// AsValidationError extracts a *ValidationError from an error chain.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ValidateOpt configures ValidateSchema, ValidateObject and ValidateValue.
type ValidateOpt struct {
	// ReturnErrors returns the violation messages instead of a
	// *ValidationError. An empty slice then means valid.
	ReturnErrors bool
}

func lastValidateOpt(opts []ValidateOpt) ValidateOpt {
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	return opt
}

// finish converts collected issues into the caller-selected result shape.
func finish(iss Issues, opt ValidateOpt) ([]string, error) {
	if opt.ReturnErrors {
		return iss.Messages(), nil
	}
	if len(iss) > 0 {
		return nil, newValidationError(iss)
	}
	return nil, nil
}
