package entity

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain errors
var (
	// Validation errors
	ErrMissingField   = errors.New("required field is missing")
	ErrInvalidRequest = errors.New("invalid request body")

	// Conversation errors
	ErrEmptyMessage    = errors.New("message is empty")
	ErrRequestInFlight = errors.New("a question is already being answered")
)

// RelayErrorKind classifies why a relayed query failed
type RelayErrorKind int

const (
	// KindValidation: the caller sent no usable question
	KindValidation RelayErrorKind = iota + 1
	// KindUpstream: upstream answered with a non-2xx status
	KindUpstream
	// KindUpstreamUnavailable: upstream could not be reached or stopped responding
	KindUpstreamUnavailable
	// KindInternal: anything else that went wrong locally
	KindInternal
)

func (k RelayErrorKind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindUpstream:
		return "UpstreamError"
	case KindUpstreamUnavailable:
		return "UpstreamUnavailable"
	case KindInternal:
		return "InternalError"
	default:
		return fmt.Sprintf("RelayErrorKind(%d)", int(k))
	}
}

// Caller-facing texts of each failure kind
const (
	MsgQuestionRequired    = "Question is required"
	AnswerQuestionRequired = "Please provide a question to get an answer."

	MsgUpstreamError    = "Error from Python API"
	AnswerUpstreamError = "Sorry, there was an error processing your question. Please try again."

	MsgUpstreamUnavailable    = "Python API unavailable"
	AnswerUpstreamUnavailable = "The AI service is currently unavailable. Please try again later."

	MsgInternalError    = "Internal server error"
	AnswerInternalError = "An unexpected error occurred. Please try again."
)

// RelayError is the failure result of a relayed query. Err keeps the cause for
// logging only; it never reaches the caller.
type RelayError struct {
	Kind RelayErrorKind
	// UpstreamStatus is set for KindUpstream
	UpstreamStatus int
	Err            error
}

func NewValidationError(err error) *RelayError {
	return &RelayError{Kind: KindValidation, Err: err}
}

func NewUpstreamError(status int, err error) *RelayError {
	return &RelayError{Kind: KindUpstream, UpstreamStatus: status, Err: err}
}

func NewUpstreamUnavailableError(err error) *RelayError {
	return &RelayError{Kind: KindUpstreamUnavailable, Err: err}
}

func NewInternalError(err error) *RelayError {
	return &RelayError{Kind: KindInternal, Err: err}
}

func (e *RelayError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RelayError) Unwrap() error {
	return e.Err
}

// StatusCode is the HTTP status the relay answers with
func (e *RelayError) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstream:
		if e.UpstreamStatus >= 100 && e.UpstreamStatus <= 999 {
			return e.UpstreamStatus
		}
		return http.StatusBadGateway
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Response is the fixed body for the failure kind
func (e *RelayError) Response() ErrorResponse {
	switch e.Kind {
	case KindValidation:
		return ErrorResponse{Error: MsgQuestionRequired, Answer: AnswerQuestionRequired}
	case KindUpstream:
		return ErrorResponse{Error: MsgUpstreamError, Answer: AnswerUpstreamError}
	case KindUpstreamUnavailable:
		return ErrorResponse{Error: MsgUpstreamUnavailable, Answer: AnswerUpstreamUnavailable}
	default:
		return ErrorResponse{Error: MsgInternalError, Answer: AnswerInternalError}
	}
}

// Relay client errors
var (
	ErrRelayUnreachable = errors.New("relay unreachable")
	ErrRelayStatus      = errors.New("relay responded with an error status")
)
