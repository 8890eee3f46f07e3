package errors

import "net/http"

// Category represents the type of error for display and handling purposes.
type Category int

const (
	// CategoryUnknown is the default for unclassified errors.
	CategoryUnknown Category = iota
	// CategoryValidation indicates input the caller must correct.
	CategoryValidation
	// CategoryNotFound indicates the target record does not exist.
	CategoryNotFound
	// CategoryStore indicates a storage failure.
	CategoryStore
)

// String returns the string representation of the category.
func (c Category) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryNotFound:
		return "not_found"
	case CategoryStore:
		return "store"
	default:
		return "unknown"
	}
}

// Classify determines the category of an error.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryUnknown
	case IsValidation(err):
		return CategoryValidation
	case IsNotFound(err):
		return CategoryNotFound
	case IsStore(err):
		return CategoryStore
	default:
		return CategoryUnknown
	}
}

// HTTPStatus maps an error category to the response status used by the REST API.
func HTTPStatus(err error) int {
	switch Classify(err) {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
