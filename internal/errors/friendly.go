package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"
)

// UserFriendlyError provides actionable error messages for end users
type UserFriendlyError struct {
	Message    string // User-facing message explaining what went wrong
	Suggestion string // Actionable steps to fix the issue
	DocsLink   string // Optional link to documentation
	Details    error  // Original error for debugging/logs
}

func (e *UserFriendlyError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString("How to fix:\n")
		sb.WriteString(e.Suggestion)
	}

	if e.DocsLink != "" {
		sb.WriteString("\n\n")
		sb.WriteString("Documentation: ")
		sb.WriteString(e.DocsLink)
	}

	return sb.String()
}

func (e *UserFriendlyError) Unwrap() error {
	return e.Details
}

// NewFriendlyError creates a user-friendly error
func NewFriendlyError(message, suggestion string) *UserFriendlyError {
	return &UserFriendlyError{
		Message:    message,
		Suggestion: suggestion,
	}
}

// WithDetails adds the underlying error details
func (e *UserFriendlyError) WithDetails(err error) *UserFriendlyError {
	e.Details = err
	return e
}

// WithDocs adds a documentation link
func (e *UserFriendlyError) WithDocs(link string) *UserFriendlyError {
	e.DocsLink = link
	return e
}

// FileError explains a failure to read a file selected for hashing.
func FileError(path string, err error) *UserFriendlyError {
	msg := fmt.Sprintf("Cannot read file: %s", path)
	suggestion := "Check that the file still exists and pick it again"

	switch {
	case err == nil:
	case stderrors.Is(err, fs.ErrNotExist):
		msg = fmt.Sprintf("File not found: %s", path)
		suggestion = "The file may have been moved or deleted. Pick the file again."
	case stderrors.Is(err, fs.ErrPermission):
		msg = fmt.Sprintf("Permission denied: %s", path)
		suggestion = fmt.Sprintf("Ensure you have read permission:\n  chmod u+r %s", path)
	case strings.Contains(err.Error(), "is a directory"):
		msg = fmt.Sprintf("Path is a directory, not a file: %s", path)
		suggestion = "Pick a regular file"
	}

	return &UserFriendlyError{
		Message:    msg,
		Suggestion: suggestion,
		Details:    err,
	}
}

// ConfigError returns configuration-related errors
func ConfigError(field, issue string) *UserFriendlyError {
	return &UserFriendlyError{
		Message:    fmt.Sprintf("Configuration error in field '%s': %s", field, issue),
		Suggestion: "Run 'hashcheck config validate' to check your configuration\nOr run 'hashcheck config wizard' to create a new configuration interactively",
		DocsLink:   "https://github.com/jxwalker/hashcheck#configuration",
	}
}

// Summary returns the first line of a friendly error's message, or err.Error()
// for other errors. Used where only one line of space is available.
func Summary(err error) string {
	if err == nil {
		return ""
	}
	var fe *UserFriendlyError
	if stderrors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}
