package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeInvalidPosition   = "INVALID_POSITION"
	ErrCodeEvalUnavailable   = "EVALUATION_UNAVAILABLE"
	ErrCodeInconsistentMoves = "INCONSISTENT_MOVES"
	ErrCodeEmptyGame         = "EMPTY_GAME"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "INVALID_POSITION")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Ply     int    // Offending ply index for per-ply errors, -1 otherwise
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
		Ply:     -1,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
		Ply:     -1,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Ply:     -1,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
		Ply:     -1,
	}
}

// NewInvalidPositionError marks a malformed board state.
func NewInvalidPositionError(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeInvalidPosition,
		Message: fmt.Sprintf("invalid position: %s", reason),
		Status:  422,
		Ply:     -1,
	}
}

// NewEvaluationUnavailableError marks an engine failure or timeout for one ply.
func NewEvaluationUnavailableError(ply int, err error) *AppError {
	return &AppError{
		Code:    ErrCodeEvalUnavailable,
		Message: fmt.Sprintf("engine evaluation unavailable for ply %d", ply),
		Status:  502,
		Ply:     ply,
		Err:     err,
	}
}

// NewEmptyGameError marks a game with no moves to analyze.
func NewEmptyGameError() *AppError {
	return &AppError{
		Code:    ErrCodeEmptyGame,
		Message: "game contains no moves",
		Status:  422,
		Ply:     -1,
	}
}

// NewInconsistentMovesError marks an illegal move in the input sequence. This
// is fatal for the whole analysis: the input cannot be trusted.
func NewInconsistentMovesError(ply int, err error) *AppError {
	msg := "move sequence is inconsistent"
	if ply >= 0 {
		msg = fmt.Sprintf("move sequence is inconsistent at ply %d", ply)
	}
	return &AppError{
		Code:    ErrCodeInconsistentMoves,
		Message: msg,
		Status:  422,
		Ply:     ply,
		Err:     err,
	}
}
