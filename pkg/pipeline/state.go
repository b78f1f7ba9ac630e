package pipeline

import (
	"fmt"
	"strings"
)

// State is the unit of data flowing through one pipeline run. Question and
// SessionID are set at entry; the pointer fields are written by stages.
// A nil pointer means "absent", which is distinct from an empty string.
// FollowUps is kept as a typed ordered list internally and only joined to
// newline-delimited text at the serialization boundary.
type State struct {
	Question  string
	SessionID string
	Context   *string
	Answer    *string
	FollowUps []string
	Summary   *string
}

// Update is the partial state a stage returns. Nil fields are not merged.
type Update struct {
	Context   *string
	Answer    *string
	FollowUps []string
	Summary   *string
}

// apply merges an update into the state. Fields are write-once per run:
// a stage overwriting a field set earlier in the same run is a wiring bug,
// surfaced as an error rather than silently clobbered.
func (s *State) apply(stage string, u *Update) error {
	if u == nil {
		return nil
	}
	if u.Context != nil {
		if s.Context != nil {
			return fmt.Errorf("stage %s rewrote context", stage)
		}
		s.Context = u.Context
	}
	if u.Answer != nil {
		if s.Answer != nil {
			return fmt.Errorf("stage %s rewrote answer", stage)
		}
		s.Answer = u.Answer
	}
	if u.FollowUps != nil {
		if s.FollowUps != nil {
			return fmt.Errorf("stage %s rewrote follow-ups", stage)
		}
		s.FollowUps = u.FollowUps
	}
	if u.Summary != nil {
		if s.Summary != nil {
			return fmt.Errorf("stage %s rewrote summary", stage)
		}
		s.Summary = u.Summary
	}
	return nil
}

// ContextText returns the retrieved context, or "" when absent.
func (s *State) ContextText() string {
	return deref(s.Context)
}

// AnswerText returns the generated answer, or "" when absent.
func (s *State) AnswerText() string {
	return deref(s.Answer)
}

// SummaryText returns the summary, or "" when absent.
func (s *State) SummaryText() string {
	return deref(s.Summary)
}

// FollowUpText serializes the follow-up list to newline-delimited text,
// the wire format the HTTP boundary exposes.
func (s *State) FollowUpText() string {
	return strings.Join(s.FollowUps, "\n")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string {
	return &s
}
