package pipeline

import (
	"context"
	"log"
	"strings"

	"ai-chat-rag-be/internal/repository/contract"
	"ai-chat-rag-be/pkg/llm"
)

// Stage names, also the identifiers carried by ExecutionError.
const (
	StageRetrieve  = "retrieve"
	StageGenerate  = "generate"
	StageSuggest   = "suggest"
	StageSummarize = "summarize"
)

// Retriever is the slice of the semantic index a pipeline run needs.
type Retriever interface {
	Query(ctx context.Context, text string, topK int) ([]string, error)
}

// Stage is one named step of the pipeline. It reads the accumulated state
// and returns a partial update for the engine to merge.
type Stage interface {
	Name() string
	Run(ctx context.Context, state *State) (*Update, error)
}

// --- retrieve ---

type retrieveStage struct {
	index  Retriever
	topK   int
	logger *log.Logger
}

func (s *retrieveStage) Name() string { return StageRetrieve }

func (s *retrieveStage) Run(ctx context.Context, state *State) (*Update, error) {
	// A summary-only run carries an empty question. Searching on it would
	// return arbitrary low-relevance chunks, so the context is fixed to
	// empty instead, keeping the stage deterministic and skipping the
	// embedding call entirely.
	if state.Question == "" {
		return &Update{Context: ptr("")}, nil
	}

	chunks, err := s.index.Query(ctx, state.Question, s.topK)
	if err != nil {
		return nil, err
	}

	s.logger.Printf("[retrieve] %d chunks for session %s", len(chunks), state.SessionID)
	return &Update{Context: ptr(strings.Join(chunks, "\n"))}, nil
}

// --- generate ---

type generateStage struct {
	memory    contract.MemoryRepository
	generator llm.LLMProvider
	logger    *log.Logger
}

func (s *generateStage) Name() string { return StageGenerate }

func (s *generateStage) Run(ctx context.Context, state *State) (*Update, error) {
	records, err := s.memory.History(ctx, state.SessionID)
	if err != nil {
		return nil, err
	}

	prompt := answerPrompt(state.ContextText(), historyText(records), state.Question)

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	// The turn is committed immediately after a successful generation;
	// a later stage failing does not roll it back.
	if err := s.memory.Append(ctx, state.SessionID, state.Question, answer); err != nil {
		return nil, err
	}

	s.logger.Printf("[generate] answered session %s (history %d turns)", state.SessionID, len(records))
	return &Update{Answer: ptr(answer)}, nil
}

// --- suggest ---

type suggestStage struct {
	generator llm.LLMProvider
	logger    *log.Logger
}

func (s *suggestStage) Name() string { return StageSuggest }

func (s *suggestStage) Run(ctx context.Context, state *State) (*Update, error) {
	prompt := suggestPrompt(state.Question, state.AnswerText())

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	// The prompt asks for exactly two questions but the model output is
	// passed through unvalidated; consumers parse defensively. Splitting
	// on newlines is lossless against the wire format.
	followUps := strings.Split(raw, "\n")

	s.logger.Printf("[suggest] %d follow-ups for session %s", len(followUps), state.SessionID)
	return &Update{FollowUps: followUps}, nil
}

// --- summarize ---

type summarizeStage struct {
	memory    contract.MemoryRepository
	generator llm.LLMProvider
	logger    *log.Logger
}

func (s *summarizeStage) Name() string { return StageSummarize }

func (s *summarizeStage) Run(ctx context.Context, state *State) (*Update, error) {
	// Reloads history after generate has committed, so the summary covers
	// the turn produced earlier in this same run.
	records, err := s.memory.History(ctx, state.SessionID)
	if err != nil {
		return nil, err
	}

	summary, err := s.generator.Generate(ctx, summaryPrompt(historyText(records)))
	if err != nil {
		return nil, err
	}

	s.logger.Printf("[summarize] session %s (%d turns)", state.SessionID, len(records))
	return &Update{Summary: ptr(summary)}, nil
}
