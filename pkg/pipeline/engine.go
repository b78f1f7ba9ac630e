package pipeline

import (
	"context"
	"fmt"
	"log"

	"ai-chat-rag-be/internal/repository/contract"
	"ai-chat-rag-be/pkg/llm"
)

const defaultTopK = 3

// Engine executes the fixed retrieve → generate → suggest → summarize
// pipeline over a per-run State. All collaborators are explicit handles
// passed at construction; stage logic reaches no package-level state.
//
// Summarize runs even when the caller only wants an answer. That cost is
// inherited behavior, kept deliberately; callers that want a cheaper
// summary-only run opt into RunStages with an explicit subset.
type Engine struct {
	stages []Stage
	logger *log.Logger
}

// NewEngine wires the standard four-stage pipeline. topK bounds how many
// chunks the retrieve stage asks for; zero or negative falls back to the
// default of 3.
func NewEngine(
	index Retriever,
	memory contract.MemoryRepository,
	generator llm.LLMProvider,
	topK int,
	logger *log.Logger,
) *Engine {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &Engine{
		stages: []Stage{
			&retrieveStage{index: index, topK: topK, logger: logger},
			&generateStage{memory: memory, generator: generator, logger: logger},
			&suggestStage{generator: generator, logger: logger},
			&summarizeStage{memory: memory, generator: generator, logger: logger},
		},
		logger: logger,
	}
}

// Run executes the full pipeline for one (question, sessionID) pair and
// returns the final state. Question may be empty for a summary-only
// invocation; sessionID is required. Any stage failure aborts the run
// with an ExecutionError naming the stage; no partial result is
// returned, though memory writes committed by earlier stages remain.
func (e *Engine) Run(ctx context.Context, question, sessionID string) (*State, error) {
	return e.run(ctx, question, sessionID, e.stages)
}

// RunStages executes only the named stages, preserving the fixed order.
// Unknown names are rejected. This is the opt-in path for callers that
// want a subset, e.g. a summary-only run.
func (e *Engine) RunStages(ctx context.Context, question, sessionID string, names ...string) (*State, error) {
	if len(names) == 0 {
		return e.Run(ctx, question, sessionID)
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if !e.knownStage(n) {
			return nil, fmt.Errorf("unknown pipeline stage: %s", n)
		}
		wanted[n] = true
	}

	var subset []Stage
	for _, st := range e.stages {
		if wanted[st.Name()] {
			subset = append(subset, st)
		}
	}
	return e.run(ctx, question, sessionID, subset)
}

func (e *Engine) run(ctx context.Context, question, sessionID string, stages []Stage) (*State, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID is required")
	}

	state := &State{
		Question:  question,
		SessionID: sessionID,
	}

	for _, st := range stages {
		update, err := st.Run(ctx, state)
		if err != nil {
			e.logger.Printf("[engine] stage %s failed for session %s: %v", st.Name(), sessionID, err)
			return nil, &ExecutionError{Stage: st.Name(), Err: err}
		}
		if err := state.apply(st.Name(), update); err != nil {
			return nil, &ExecutionError{Stage: st.Name(), Err: err}
		}
	}

	return state, nil
}

func (e *Engine) knownStage(name string) bool {
	for _, st := range e.stages {
		if st.Name() == name {
			return true
		}
	}
	return false
}
