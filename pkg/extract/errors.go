package extract

import "fmt"

// ErrorType categorizes different types of extraction errors
type ErrorType string

const (
	ErrorTypeInvalidRange ErrorType = "invalid_range"
	ErrorTypePageRead     ErrorType = "page_read"
	ErrorTypeDocumentOpen ErrorType = "document_open"
	ErrorTypeEngine       ErrorType = "engine"
	ErrorTypeCancelled    ErrorType = "cancelled"
)

// Error represents a structured error from the extraction pipeline
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *Error) Unwrap() error {
	return e.Cause
}

// Recoverable reports whether extraction may continue past this error.
// Only page-level read failures are tolerated; everything else ends the job.
func (e *Error) Recoverable() bool {
	return e.Type == ErrorTypePageRead
}

// UserMessage returns a user-friendly error message
func (e *Error) UserMessage() string {
	switch e.Type {
	case ErrorTypeInvalidRange:
		return fmt.Sprintf("Invalid page range: %s", e.Message)
	case ErrorTypePageRead:
		return fmt.Sprintf("A page could not be read: %s", e.Message)
	case ErrorTypeDocumentOpen:
		return "The document could not be opened. Please check that the file exists and is a readable PDF."
	case ErrorTypeEngine:
		return "Text analysis failed. The document may not contain recognizable text content."
	case ErrorTypeCancelled:
		return "Extraction was cancelled."
	default:
		return e.Message
	}
}

// NewDocumentOpenError reports a document that could not be opened at all.
func NewDocumentOpenError(path string, cause error) *Error {
	return &Error{
		Type:    ErrorTypeDocumentOpen,
		Message: fmt.Sprintf("cannot open %s", path),
		Cause:   cause,
	}
}

// NewPageReadError reports a single page that failed to yield text.
func NewPageReadError(pageNum int, cause error) *Error {
	return &Error{
		Type:    ErrorTypePageRead,
		Message: fmt.Sprintf("page %d unreadable", pageNum),
		Cause:   cause,
	}
}

func newInvalidRangeError(r PageRange, totalPages int) *Error {
	return &Error{
		Type:    ErrorTypeInvalidRange,
		Message: fmt.Sprintf("pages %d-%d outside 1-%d", r.Start, r.End, totalPages),
	}
}

func newEngineError(pageNum int, cause error) *Error {
	return &Error{
		Type:    ErrorTypeEngine,
		Message: fmt.Sprintf("processing page %d", pageNum),
		Cause:   cause,
	}
}

func newCancelledError(cause error) *Error {
	return &Error{
		Type:    ErrorTypeCancelled,
		Message: "extraction cancelled",
		Cause:   cause,
	}
}
