// Package errors defines the structured error model shared by every
// fallible operation in the sdf module.
//
// Loading and validation never stop at the first problem: callers receive
// an Errors list that accumulates everything found while the loader keeps
// going with best-effort defaults. Each entry carries a stable Code so
// tools can act on failures without parsing messages.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code identifies a class of document or frame-graph failure.
type Code string

const (
	// CodeAttributeMissing indicates a required attribute was not set.
	CodeAttributeMissing Code = "attribute_missing"
	// CodeAttributeInvalid indicates an attribute value failed to parse.
	CodeAttributeInvalid Code = "attribute_invalid"
	// CodeElementMissing indicates a required child element is absent.
	CodeElementMissing Code = "element_missing"
	// CodeElementIncorrectType indicates a node of the wrong kind was
	// handed to a loader expecting a specific element name.
	CodeElementIncorrectType Code = "element_incorrect_type"
	// CodeElementInvalid indicates an element's value failed to parse.
	CodeElementInvalid Code = "element_invalid"
	// CodeDuplicateName indicates two sibling entities share a name that
	// must be unique within their scope.
	CodeDuplicateName Code = "duplicate_name"
	// CodeReservedName indicates a user-supplied name collides with a
	// name reserved for internal use.
	CodeReservedName Code = "reserved_name"
	// CodeFrameInvalid indicates a frame reference names no known frame.
	CodeFrameInvalid Code = "frame_invalid"
	// CodePoseRelativeToCycle indicates relative-to edges form a loop.
	CodePoseRelativeToCycle Code = "pose_relative_to_cycle"
	// CodePoseRelativeToGraph indicates a pose could not be resolved
	// because its frame graph is absent or unusable.
	CodePoseRelativeToGraph Code = "pose_relative_to_graph_error"
	// CodeFileRead indicates the document file could not be read.
	CodeFileRead Code = "file_read"
	// CodeParse indicates malformed markup below the element model.
	CodeParse Code = "parse_error"
	// CodeUnknownElement indicates an element the schema does not
	// describe (reported only under the pedantic policy).
	CodeUnknownElement Code = "unknown_element"
	// CodeUnknownAttribute indicates an attribute the schema does not
	// describe (reported only under the pedantic policy).
	CodeUnknownAttribute Code = "unknown_attribute"
)

// Error is a single structured failure. FilePath, LineNumber and XMLPath
// locate the offending node when the source document is known; zero values
// mean unknown.
type Error struct {
	Code       Code
	Message    string
	FilePath   string
	LineNumber int
	XMLPath    string
}

// New builds an Error from a code and message.
func New(code Code, msg string) Error {
	return Error{Code: code, Message: msg}
}

// Newf formats a message and builds an Error.
func Newf(code Code, format string, args ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithLocation returns a copy of the error annotated with source context.
// Zero or empty fields leave the existing annotation untouched.
func (e Error) WithLocation(filePath string, lineNumber int, xmlPath string) Error {
	if filePath != "" {
		e.FilePath = filePath
	}
	if lineNumber > 0 {
		e.LineNumber = lineNumber
	}
	if xmlPath != "" {
		e.XMLPath = xmlPath
	}
	return e
}

// Error formats the failure with whatever location context it carries.
func (e Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.XMLPath != "" {
		fmt.Fprintf(&b, " at %s", e.XMLPath)
	}
	switch {
	case e.FilePath != "" && e.LineNumber > 0:
		fmt.Fprintf(&b, " (%s:%d)", e.FilePath, e.LineNumber)
	case e.FilePath != "":
		fmt.Fprintf(&b, " (%s)", e.FilePath)
	case e.LineNumber > 0:
		fmt.Fprintf(&b, " (line %d)", e.LineNumber)
	}
	return b.String()
}

// Errors accumulates structured failures in the order they were found.
// It implements error so a list can travel through plain error returns.
type Errors []Error

// Error summarizes the first few entries.
func (errs Errors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := len(errs)
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(errs[i].Error())
	}
	if len(errs) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(errs))
	}
	return b.String()
}

// Append appends entries to the destination, initializing the slice when
// needed.
func Append(dst Errors, more ...Error) Errors {
	if dst == nil {
		dst = Errors{}
	}
	return append(dst, more...)
}

// HasCode reports whether any entry carries the given code.
func (errs Errors) HasCode(code Code) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}

// ErrOrNil returns the list as an error, or nil when it is empty. Returning
// a typed nil slice through an error interface would compare non-nil, so
// callers hand results to plain error consumers through this.
func (errs Errors) ErrOrNil() error {
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// AsErrors extracts an Errors list from an error using errors.As.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	var single Error
	if errors.As(err, &single) {
		return Errors{single}, true
	}
	return nil, false
}
