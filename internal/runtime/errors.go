package runtime

import (
	"fmt"
	"strings"
	"syscall"

	"github.com/manav03panchal/choreboard/internal/errors"
)

// ErrDiskFull is reported when the store cannot write for lack of space.
var ErrDiskFull = errors.New("disk full: unable to write to database")

func init() {
	errors.Suggestions[ErrDiskFull] = "Free up disk space and try again."
}

// Exit codes returned by the CLI.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitValidation = 2
	ExitNotFound   = 3
	ExitStore      = 4
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch errors.Classify(err) {
	case errors.CategoryValidation:
		return ExitValidation
	case errors.CategoryNotFound:
		return ExitNotFound
	case errors.CategoryStore:
		return ExitStore
	}
	if IsDiskFullError(err) {
		return ExitStore
	}
	return ExitError
}

// FormatError formats an error with its suggestion, if any.
func FormatError(err error) string {
	return errors.FormatError(WrapDiskFullError(err, "", ""))
}

// DiskFullError represents a disk full condition with additional context.
type DiskFullError struct {
	Op      string // The operation that failed (e.g., "open", "write")
	Path    string // The path involved, if known
	wrapped error
}

func (e *DiskFullError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("disk full during %s on %s: %v", e.Op, e.Path, e.wrapped)
	}
	if e.Op != "" {
		return fmt.Sprintf("disk full during %s: %v", e.Op, e.wrapped)
	}
	return fmt.Sprintf("disk full: %v", e.wrapped)
}

func (e *DiskFullError) Unwrap() error {
	return ErrDiskFull
}

// NewDiskFullError creates a new DiskFullError.
func NewDiskFullError(op, path string, err error) *DiskFullError {
	return &DiskFullError{
		Op:      op,
		Path:    path,
		wrapped: err,
	}
}

var diskFullPatterns = []string{
	"no space left on device",
	"disk full",
	"enospc",
	"not enough space",
	"insufficient disk space",
	"database or disk is full",
}

// IsDiskFullError checks if an error indicates a disk full condition.
func IsDiskFullError(err error) bool {
	if err == nil {
		return false
	}

	var diskFullErr *DiskFullError
	if errors.As(err, &diskFullErr) || errors.Is(err, ErrDiskFull) {
		return true
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno == syscall.ENOSPC {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, pattern := range diskFullPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// WrapDiskFullError wraps an error as a DiskFullError if it indicates disk full.
// Other errors are returned unchanged.
func WrapDiskFullError(err error, op, path string) error {
	if err == nil || !IsDiskFullError(err) {
		return err
	}
	var diskFullErr *DiskFullError
	if errors.As(err, &diskFullErr) {
		return err
	}
	return NewDiskFullError(op, path, err)
}
