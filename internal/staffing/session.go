// Package staffing drives the recommendation-review workflow: fetch
// ranked candidates for a project, request a free-text team
// recommendation from an inference endpoint, answer follow-up
// questions, and commit a validated five-person team to the backend.
package staffing

import (
	"sync"

	"github.com/consultmatch/consultmatch/internal/consultmatch"

	"github.com/google/uuid"
)

// Step is the workflow position. Linear, with a terminal staffing
// branch tracked separately in Outcome.
type Step string

const (
	StepProjectReview            Step = "project_review"
	StepRecommendationsRequested Step = "recommendations_requested"
	StepCandidatesReady          Step = "candidates_ready"
	StepAIAnalysisRequested      Step = "ai_analysis_requested"
	StepAIReplyReady             Step = "ai_reply_ready"
)

// Outcome tracks the final staffing commit action.
type Outcome string

const (
	OutcomeIdle    Outcome = "idle"
	OutcomeLoading Outcome = "loading"
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry in the session conversation.
type Turn struct {
	Role    string
	Content string
}

// Session holds all mutable state of one workflow run. State is
// explicit and passed down rather than ambient, so independent
// sessions can coexist. A session lives in memory only and is
// replaced entirely on restart.
type Session struct {
	ID              string
	Project         *consultmatch.Project
	Difficulty      consultmatch.Difficulty
	Recommendations *consultmatch.Recommendations

	mu           sync.Mutex
	step         Step
	outcome      Outcome
	outcomeMsg   string
	conversation []Turn
	inFlight     bool
	committing   bool
}

func newSession(project *consultmatch.Project, difficulty consultmatch.Difficulty) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Project:    project,
		Difficulty: difficulty,
		step:       StepProjectReview,
		outcome:    OutcomeIdle,
	}
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Outcome returns the staffing commit state and, for the error
// state, its message.
func (s *Session) Outcome() (Outcome, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome, s.outcomeMsg
}

// Conversation returns a copy of the role-tagged turns in append
// order.
func (s *Session) Conversation() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	turns := make([]Turn, len(s.conversation))
	copy(turns, s.conversation)
	return turns
}

// FirstReply returns the initial assistant turn, the one the
// extraction protocol reads. Follow-up replies are never used for
// staffing.
func (s *Session) FirstReply() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, turn := range s.conversation {
		if turn.Role == RoleAssistant {
			return turn.Content, true
		}
	}

	return "", false
}

func (s *Session) appendTurn(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = append(s.conversation, Turn{Role: role, Content: content})
}

// acquireFlight marks an AI request as pending. At most one request
// is in flight per session at any time.
func (s *Session) acquireFlight(step Step) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight {
		return false
	}

	s.inFlight = true
	s.step = step
	return true
}

func (s *Session) releaseFlight(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
	s.step = step
}

// beginCommit moves the staffing outcome to loading. It refuses when
// a commit is already running or has already succeeded, so a second
// confirm never issues a second request.
func (s *Session) beginCommit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.committing || s.outcome == OutcomeSuccess {
		return false
	}

	s.committing = true
	s.outcome = OutcomeLoading
	s.outcomeMsg = ""
	return true
}

func (s *Session) finishCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.committing = false
	if err != nil {
		s.outcome = OutcomeError
		s.outcomeMsg = err.Error()
		return
	}

	s.outcome = OutcomeSuccess
}

func (s *Session) setStep(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step = step
}
