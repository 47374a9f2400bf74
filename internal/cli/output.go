package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // invalid catalog, script or page
	ExitCommandError = 2 // unreadable input
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode extracts the exit code from err. Errors that are not an
// ExitError map to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Response is the JSON envelope of every command.
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

// formatter writes command results as text or JSON.
type formatter struct {
	format string
	w      io.Writer
}

// success writes data. In text mode text is printed instead.
func (f *formatter) success(data any, text string) error {
	if f.format == "json" {
		return json.NewEncoder(f.w).Encode(Response{Status: "ok", Data: data})
	}
	_, err := fmt.Fprint(f.w, text)
	return err
}

// fail reports err in the configured format and returns it wrapped with code.
func (f *formatter) fail(code int, message string, err error) error {
	exitErr := &ExitError{Code: code, Message: message, Err: err}
	if f.format == "json" {
		_ = json.NewEncoder(f.w).Encode(Response{Status: "error", Error: exitErr.Error()})
	} else {
		fmt.Fprintf(f.w, "error: %s\n", exitErr.Error())
	}
	return exitErr
}
