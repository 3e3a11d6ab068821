// Package usage defines the user-facing error taxonomy and the exit
// codes every rejected command line maps onto.
package usage

import "fmt"

// ErrorKind represents the type of usage error.
type ErrorKind int

const (
	ErrUnknown ErrorKind = iota
	ErrUnknownCommand
	ErrCommandParse
	ErrArgsValidation
	ErrHandlerFailed
	ErrInterrupted
	ErrRegistration
)

// Exit codes:
//
//	Exit 0: success
//	Exit 1: fatal errors
//	  - Handler raised an error
//	  - Interrupted mid-execution
//	  - Unknown errors
//	Exit 2: command resolution errors
//	  - Unknown command (no handler invoked)
//	  - Command line failed to parse
//	Exit 4: argument validation errors
//	  - Coercion failure
//	  - Choice rejection
//	  - Missing required argument
//	  - Trailing unconsumed tokens
const (
	ExitSuccess        = 0
	ExitFatal          = 1
	ExitUnknownCommand = 2
	ExitValidation     = 4
)

var exitCodes = map[ErrorKind]int{
	ErrUnknown:        ExitFatal,
	ErrUnknownCommand: ExitUnknownCommand,
	ErrCommandParse:   ExitUnknownCommand,
	ErrArgsValidation: ExitValidation,
	ErrHandlerFailed:  ExitFatal,
	ErrInterrupted:    ExitFatal,
	ErrRegistration:   ExitFatal,
}

// Error represents a user-facing usage error with semantic type information.
type Error struct {
	Kind     ErrorKind
	Message  string
	ExitCode int // computed from Kind if zero
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Kind]; ok {
		return code
	}
	return ExitFatal
}

// CodeFor maps an error kind to its exit code.
func CodeFor(kind ErrorKind) int {
	if code, ok := exitCodes[kind]; ok {
		return code
	}
	return ExitFatal
}

// Errorf builds a usage error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
