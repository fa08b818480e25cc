package model

import (
	"net/http"
	"time"
)

type AskRequest struct {
	Question     string `json:"question"`
	EmailSubject string `json:"emailSubject,omitempty"`
	EmailBody    string `json:"emailBody,omitempty"`
}

// AskResponse is the only shape /ask-ai ever answers with.
type AskResponse struct {
	Answer string `json:"answer"`
}

// Answer markers sent back to the caller.
const (
	MarkerEmptyQuestion   = "❌ Question cannot be empty"
	MarkerInvalidBody     = "❌ Invalid request body"
	MarkerNoAnswer        = "❌ No answer from AI"
	MarkerInvalidUpstream = "❌ Gemini API returned invalid JSON"
	MarkerUpstreamError   = "❌ Gemini API error: "
	MarkerUnknownError    = "Unknown error"
	MarkerFailed          = "❌ Failed to get AI response: "
)

type OutcomeKind string

const (
	OutcomeAnswered        OutcomeKind = "answered"
	OutcomeNoAnswer        OutcomeKind = "no_answer"
	OutcomeRejected        OutcomeKind = "rejected"
	OutcomeInvalidBody     OutcomeKind = "invalid_body"
	OutcomeUpstreamInvalid OutcomeKind = "upstream_invalid"
	OutcomeUpstreamError   OutcomeKind = "upstream_error"
	OutcomeFailed          OutcomeKind = "failed"
)

// Outcome is the result of one ask before it is put on the wire.
// Detail holds the answer text for OutcomeAnswered and the error message
// for OutcomeUpstreamError and OutcomeFailed.
type Outcome struct {
	Kind   OutcomeKind
	Detail string
}

func Answered(text string) Outcome {
	if text == "" {
		return Outcome{Kind: OutcomeNoAnswer}
	}
	return Outcome{Kind: OutcomeAnswered, Detail: text}
}

func Rejected() Outcome { return Outcome{Kind: OutcomeRejected} }

func InvalidBody() Outcome { return Outcome{Kind: OutcomeInvalidBody} }

func UpstreamInvalid() Outcome { return Outcome{Kind: OutcomeUpstreamInvalid} }

// UpstreamError carries the upstream's own message, which may be empty.
func UpstreamError(msg string) Outcome {
	return Outcome{Kind: OutcomeUpstreamError, Detail: msg}
}

func Failed(err error) Outcome { return Outcome{Kind: OutcomeFailed, Detail: err.Error()} }

// Status is the HTTP status code the outcome is reported with.
func (o Outcome) Status() int {
	switch o.Kind {
	case OutcomeAnswered, OutcomeNoAnswer:
		return http.StatusOK
	case OutcomeRejected, OutcomeInvalidBody:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Answer renders the outcome as the wire answer string. It is never empty.
func (o Outcome) Answer() string {
	switch o.Kind {
	case OutcomeAnswered:
		return o.Detail
	case OutcomeNoAnswer:
		return MarkerNoAnswer
	case OutcomeRejected:
		return MarkerEmptyQuestion
	case OutcomeInvalidBody:
		return MarkerInvalidBody
	case OutcomeUpstreamInvalid:
		return MarkerInvalidUpstream
	case OutcomeUpstreamError:
		if o.Detail == "" {
			return MarkerUpstreamError + MarkerUnknownError
		}
		return MarkerUpstreamError + o.Detail
	default:
		return MarkerFailed + o.Detail
	}
}

func (o Outcome) Response() AskResponse {
	return AskResponse{Answer: o.Answer()}
}

// HistoryEntry is one journaled ask that reached the upstream.
type HistoryEntry struct {
	ID        int64       `json:"id"`
	Question  string      `json:"question"`
	Subject   string      `json:"subject"`
	Outcome   OutcomeKind `json:"outcome"`
	Status    int         `json:"status"`
	Answer    string      `json:"answer"`
	CreatedAt time.Time   `json:"createdAt"`
}
