package service

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/katakuxiko/askai/internal/metrics"
	"github.com/katakuxiko/askai/internal/model"
	"github.com/katakuxiko/askai/internal/util"
)

// maxLoggedRaw bounds how much of an unparseable upstream body is logged.
const maxLoggedRaw = 2000

// Generator produces text for a prompt. *LLMClient is the production one.
type Generator interface {
	Generate(prompt string) (string, error)
}

// Recorder journals asks that reached the upstream.
type Recorder interface {
	Record(entry model.HistoryEntry) error
}

type AskService struct {
	llm     Generator
	history Recorder
	metrics *metrics.Metrics
}

// NewAskService wires the upstream client. history and m may be nil.
func NewAskService(llm Generator, history Recorder, m *metrics.Metrics) *AskService {
	return &AskService{llm: llm, history: history, metrics: m}
}

// Ask validates req, calls the upstream at most once and returns the
// outcome to report. It never panics on upstream data.
func (s *AskService) Ask(req model.AskRequest) model.Outcome {
	if strings.TrimSpace(req.Question) == "" {
		return s.Observe(model.Rejected())
	}

	subject := util.DecodeWords(req.EmailSubject)
	prompt := BuildPrompt(subject, req.EmailBody, req.Question)

	start := time.Now()
	text, err := s.llm.Generate(prompt)
	s.metrics.ObserveUpstream(time.Since(start))

	outcome := classify(text, err)
	s.record(req.Question, subject, outcome)
	return s.Observe(outcome)
}

// Observe counts an outcome and hands it back.
func (s *AskService) Observe(o model.Outcome) model.Outcome {
	s.metrics.ObserveOutcome(o.Kind)
	return o
}

// BuildPrompt puts subject, body and question on labeled lines, in that order.
func BuildPrompt(subject, body, question string) string {
	return fmt.Sprintf("Email subject: %s\nEmail body: %s\nQuestion: %s", subject, body, question)
}

func classify(text string, err error) model.Outcome {
	if err == nil {
		return model.Answered(text)
	}

	var parseErr *ParseError
	var apiErr *APIError
	switch {
	case errors.As(err, &parseErr):
		log.Printf("invalid JSON from gemini: %v", parseErr)
		log.Printf("raw response: %s", util.TruncateRunes(parseErr.Raw, maxLoggedRaw))
		return model.UpstreamInvalid()
	case errors.As(err, &apiErr):
		log.Printf("gemini error: %v", apiErr)
		return model.UpstreamError(apiErr.Message)
	default:
		log.Printf("ask failed: %v", err)
		return model.Failed(err)
	}
}

func (s *AskService) record(question, subject string, o model.Outcome) {
	if s.history == nil {
		return
	}
	entry := model.HistoryEntry{
		Question: question,
		Subject:  subject,
		Outcome:  o.Kind,
		Status:   o.Status(),
		Answer:   o.Answer(),
	}
	if err := s.history.Record(entry); err != nil {
		log.Printf("history record error: %v", err)
	}
}
