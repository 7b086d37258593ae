package staffing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/consultmatch/consultmatch/internal/ai"
	"github.com/consultmatch/consultmatch/internal/consultmatch"
	"github.com/consultmatch/consultmatch/internal/score"

	"go.uber.org/zap"
)

// ErrRequestInFlight is returned when an AI request is issued while
// a prior one is still pending. The caller simply does not get a
// second request.
var ErrRequestInFlight = errors.New("an AI request is already in flight")

// ErrStaffingInProgress is returned when a staffing confirm arrives
// while a commit is loading or after one has succeeded.
var ErrStaffingInProgress = errors.New("staffing has already been submitted")

// errNoReply guards Confirm against being called before analysis.
var errNoReply = errors.New("no AI recommendation to confirm yet")

// Backend is the slice of the ConsultMatch client the workflow
// needs.
type Backend interface {
	GetProject(id int) (*consultmatch.Project, error)
	RecommendConsultants(projectID int) (*consultmatch.Recommendations, error)
	StaffProject(projectID int, consultantIDs []int) error
}

// Workflow orchestrates staffing sessions. Every network boundary is
// a single blocking request with no retry: failures are terminal for
// the step and wait for an explicit user re-attempt.
type Workflow struct {
	backend    Backend
	generator  ai.Generator
	normalizer score.Normalizer
	logger     *zap.Logger
}

func NewWorkflow(backend Backend, generator ai.Generator, logger *zap.Logger) *Workflow {
	return &Workflow{
		backend:    backend,
		generator:  generator,
		normalizer: score.DefaultRemapped(),
		logger:     logger,
	}
}

// Start loads the project and opens a fresh session at the project
// review step. Restarting a workflow replaces the session entirely.
func (w *Workflow) Start(projectID int) (*Session, error) {
	project, err := w.backend.GetProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("fetch project %d: %w", projectID, err)
	}

	difficulty, err := consultmatch.ParseDifficulty(project.Difficulty)
	if err != nil {
		return nil, err
	}

	session := newSession(project, difficulty)

	w.logger.Info("staffing session started",
		zap.String("session_id", session.ID),
		zap.Int("project_id", project.ID),
		zap.String("project_name", project.Name),
		zap.String("difficulty", string(difficulty)),
	)

	return session, nil
}

// FetchRecommendations pulls the ranked candidate list for the
// session's project and advances to the candidates-ready step.
func (w *Workflow) FetchRecommendations(s *Session) error {
	s.setStep(StepRecommendationsRequested)

	recommendations, err := w.backend.RecommendConsultants(s.Project.ID)
	if err != nil {
		return fmt.Errorf("fetch recommendations: %w", err)
	}

	s.Recommendations = recommendations
	s.setStep(StepCandidatesReady)

	w.logger.Info("recommendations fetched",
		zap.String("session_id", s.ID),
		zap.Int("candidates", recommendations.Len()),
	)

	return nil
}

// Analyze requests the initial team recommendation. The reply is
// appended to the conversation as the first assistant turn; the
// extraction protocol later reads exactly that turn.
func (w *Workflow) Analyze(ctx context.Context, s *Session) error {
	if s.Recommendations == nil || s.Recommendations.Len() == 0 {
		return errors.New("no candidates to analyze")
	}

	if !s.acquireFlight(StepAIAnalysisRequested) {
		return ErrRequestInFlight
	}

	prompt, err := buildAnalysisPrompt(s.Project, s.Difficulty, s.Recommendations.Top(promptCandidateLimit), w.normalizer)
	if err != nil {
		s.releaseFlight(StepCandidatesReady)
		return err
	}

	w.logger.Debug("requesting AI analysis",
		zap.String("session_id", s.ID),
		zap.String("model", w.generator.Model()),
		zap.Int("prompt_length", len(prompt)),
	)

	reply, err := w.generator.GenerateContent(ctx, prompt)
	if err != nil {
		s.releaseFlight(StepCandidatesReady)
		return fmt.Errorf("AI analysis: %w", err)
	}

	s.appendTurn(RoleAssistant, reply)
	s.releaseFlight(StepAIReplyReady)

	return nil
}

// Ask submits a follow-up question. The question is appended before
// the request is issued, so conversation order always matches
// request-issue order; the one-in-flight rule serializes the rest.
func (w *Workflow) Ask(ctx context.Context, s *Session, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return errors.New("question must not be empty")
	}

	if s.Step() != StepAIReplyReady {
		return errors.New("follow-up questions require a completed analysis")
	}

	if !s.acquireFlight(StepAIAnalysisRequested) {
		return ErrRequestInFlight
	}

	s.appendTurn(RoleUser, question)

	prompt := buildFollowUpPrompt(question, s.Project, s.Recommendations.Top(promptCandidateLimit))

	reply, err := w.generator.GenerateContent(ctx, prompt)
	if err != nil {
		s.releaseFlight(StepAIReplyReady)
		return fmt.Errorf("follow-up: %w", err)
	}

	s.appendTurn(RoleAssistant, reply)
	s.releaseFlight(StepAIReplyReady)

	return nil
}

// Confirm extracts the recommended team from the first assistant
// reply and commits it to the backend. Anything other than exactly
// five resolved consultants aborts before the commit request. A
// failed commit leaves the session retryable without re-running the
// analysis.
func (w *Workflow) Confirm(s *Session) ([]*consultmatch.Consultant, error) {
	reply, ok := s.FirstReply()
	if !ok {
		return nil, errNoReply
	}

	team, err := ResolveTeam(reply, s.Recommendations, func(name string) {
		w.logger.Warn("extracted name did not match any candidate",
			zap.String("session_id", s.ID),
			zap.String("name", name),
		)
	})
	if err != nil {
		return nil, err
	}

	if !s.beginCommit() {
		return nil, ErrStaffingInProgress
	}

	ids := make([]int, 0, len(team))
	for _, consultant := range team {
		ids = append(ids, consultant.ID)
	}

	err = w.backend.StaffProject(s.Project.ID, ids)
	s.finishCommit(err)
	if err != nil {
		return nil, fmt.Errorf("staffing commit: %w", err)
	}

	w.logger.Info("project staffed",
		zap.String("session_id", s.ID),
		zap.Int("project_id", s.Project.ID),
		zap.Ints("consultant_ids", ids),
	)

	return team, nil
}
