package syntax

import (
	"errors"
	"fmt"
	"slices"

	"github.com/dlclark/regexp2"
	"github.com/samber/lo"

	"github.com/yaklabco/textkit/pkg/highlight"
)

// ErrorCode classifies a validation failure.
type ErrorCode string

// Validation error codes.
const (
	CodeDuplicated        ErrorCode = "duplicated"
	CodeRegularExpression ErrorCode = "regularExpression"
	CodeEmpty             ErrorCode = "empty"
	CodeBlockComment      ErrorCode = "blockComment"
)

// Role names which string of an entry is at fault.
type Role string

// Entry roles.
const (
	RoleBegin Role = "begin"
	RoleEnd   Role = "end"
)

// Scope names the definition section an error belongs to. It is a
// highlight type, "outlines", or "blockComment".
type Scope string

// Non-highlight scopes.
const (
	ScopeOutlines     Scope = "outlines"
	ScopeBlockComment Scope = "blockComment"
)

// ErrInvalidDefinition matches every ValidationError.
var ErrInvalidDefinition = errors.New("invalid syntax definition")

// ValidationError describes one problem in a definition.
type ValidationError struct {
	Code   ErrorCode
	Scope  Scope
	Role   Role
	String string
	Err    error
}

// Error implements error.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s [%s]: %q: %s", e.Scope, e.Role, e.String, e.FailureReason())
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap returns the underlying regex error, if any.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches ErrInvalidDefinition.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDefinition
}

// FailureReason returns a sentence describing the code.
func (e *ValidationError) FailureReason() string {
	switch e.Code {
	case CodeDuplicated:
		return "The same word is registered multiple times."
	case CodeRegularExpression:
		return "Invalid regular expression."
	case CodeEmpty:
		return "The extraction pattern is empty."
	case CodeBlockComment:
		return "Block comment needs both begin delimiter and end delimiter."
	default:
		return "Unknown error."
	}
}

// Validate checks the definition and returns every problem found, ordered
// by highlight type, then outlines, then comment delimiters.
func (d *Definition) Validate() []*ValidationError {
	var errs []*ValidationError

	for _, t := range AllTypes {
		errs = append(errs, validateHighlights(Scope(t), d.Highlights(t))...)
	}

	for _, outline := range d.Outlines {
		if outline.Pattern == "" {
			errs = append(errs, &ValidationError{
				Code:   CodeEmpty,
				Scope:  ScopeOutlines,
				Role:   RoleBegin,
				String: outline.Pattern,
			})

			continue
		}

		if _, err := compileOutline(outline); err != nil {
			errs = append(errs, &ValidationError{
				Code:   CodeRegularExpression,
				Scope:  ScopeOutlines,
				Role:   RoleBegin,
				String: outline.Pattern,
				Err:    err,
			})
		}
	}

	delimiters := d.CommentDelimiters

	switch {
	case delimiters.BlockBegin != "" && delimiters.BlockEnd == "":
		errs = append(errs, &ValidationError{
			Code:   CodeBlockComment,
			Scope:  ScopeBlockComment,
			Role:   RoleBegin,
			String: delimiters.BlockBegin,
		})
	case delimiters.BlockBegin == "" && delimiters.BlockEnd != "":
		errs = append(errs, &ValidationError{
			Code:   CodeBlockComment,
			Scope:  ScopeBlockComment,
			Role:   RoleEnd,
			String: delimiters.BlockEnd,
		})
	}

	return errs
}

// Err joins the validation errors, or returns nil when the definition is valid.
func (d *Definition) Err() error {
	return errors.Join(lo.Map(d.Validate(), func(e *ValidationError, _ int) error { return e })...)
}

func validateHighlights(scope Scope, highlights []Highlight) []*ValidationError {
	var errs []*ValidationError

	sorted := slices.Clone(highlights)
	slices.SortStableFunc(sorted, compareHighlights)

	type key struct{ begin, end string }

	seen := make(map[key]struct{}, len(sorted))

	for _, h := range sorted {
		k := key{begin: h.Begin, end: h.End}
		if _, ok := seen[k]; ok {
			errs = append(errs, &ValidationError{
				Code:   CodeDuplicated,
				Scope:  scope,
				Role:   RoleBegin,
				String: h.Begin,
			})

			continue
		}

		seen[k] = struct{}{}
	}

	for _, h := range lo.Filter(sorted, func(h Highlight, _ int) bool { return h.IsRegularExpression }) {
		if err := checkPattern(h.Begin, h.IgnoreCase); err != nil {
			errs = append(errs, &ValidationError{
				Code:   CodeRegularExpression,
				Scope:  scope,
				Role:   RoleBegin,
				String: h.Begin,
				Err:    err,
			})
		}

		if h.End == "" {
			continue
		}

		if err := checkPattern(h.End, h.IgnoreCase); err != nil {
			errs = append(errs, &ValidationError{
				Code:   CodeRegularExpression,
				Scope:  scope,
				Role:   RoleEnd,
				String: h.End,
				Err:    err,
			})
		}
	}

	return errs
}

func checkPattern(pattern string, ignoreCase bool) error {
	_, err := highlight.NewRegexExtractor(pattern, ignoreCase)

	return err
}

func compileOutline(outline Outline) (*regexp2.Regexp, error) {
	options := regexp2.RegexOptions(regexp2.Multiline)
	if outline.IgnoreCase {
		options |= regexp2.IgnoreCase
	}

	re, err := regexp2.Compile(outline.Pattern, options)
	if err != nil {
		return nil, &highlight.RegexError{Pattern: outline.Pattern, Err: err}
	}

	return re, nil
}
