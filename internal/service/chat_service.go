package service

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"ai-chat-rag-be/internal/dto"
	"ai-chat-rag-be/internal/repository/contract"
	"ai-chat-rag-be/pkg/events"
	"ai-chat-rag-be/pkg/llm"
	"ai-chat-rag-be/pkg/pipeline"
)

// IChatService defines the conversation service interface
type IChatService interface {
	Query(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error)
	Summarize(ctx context.Context, request *dto.SummarizeRequest) (*dto.SummarizeResponse, error)
	History(ctx context.Context, sessionId string) (*dto.HistoryResponse, error)
}

type chatService struct {
	engine     *pipeline.Engine
	memoryRepo contract.MemoryRepository
	publisher  IPublisherService
	consumer   IConsumerService
	llmLogger  *log.Logger
}

func NewChatService(
	index pipeline.Retriever,
	memoryRepo contract.MemoryRepository,
	llmProvider llm.LLMProvider,
	topK int,
	publisher IPublisherService,
	consumer IConsumerService,
) IChatService {
	llmLogger := initLLMLogger()

	return &chatService{
		engine:     pipeline.NewEngine(index, memoryRepo, llmProvider, topK, llmLogger),
		memoryRepo: memoryRepo,
		publisher:  publisher,
		consumer:   consumer,
		llmLogger:  llmLogger,
	}
}

func (cs *chatService) Query(ctx context.Context, request *dto.QueryRequest) (*dto.QueryResponse, error) {
	state, err := cs.engine.Run(ctx, request.Question, request.SessionId)
	if err != nil {
		return nil, err
	}

	if err := cs.publisher.PublishTurnRecorded(events.NewTurnRecorded(request.SessionId, request.Question)); err != nil {
		// The turn is already persisted, a lost activity event is not fatal.
		cs.llmLogger.Printf("[WARN] Failed to publish turn recorded event: %v", err)
	}

	return &dto.QueryResponse{
		Question:  state.Question,
		SessionId: state.SessionID,
		Context:   state.ContextText(),
		Answer:    state.AnswerText(),
		FollowUp:  state.FollowUpText(),
		Summary:   state.SummaryText(),
	}, nil
}

func (cs *chatService) Summarize(ctx context.Context, request *dto.SummarizeRequest) (*dto.SummarizeResponse, error) {
	var (
		state *pipeline.State
		err   error
	)
	if request.Fast {
		state, err = cs.engine.RunStages(ctx, "", request.SessionId, pipeline.StageSummarize)
	} else {
		// Full run with an empty question keeps the historical behavior,
		// including the empty turn it appends to memory.
		state, err = cs.engine.Run(ctx, "", request.SessionId)
	}
	if err != nil {
		return nil, err
	}

	// The full run committed a turn, so it announces one; the fast path
	// writes nothing and stays silent.
	if !request.Fast {
		if err := cs.publisher.PublishTurnRecorded(events.NewTurnRecorded(request.SessionId, "")); err != nil {
			cs.llmLogger.Printf("[WARN] Failed to publish turn recorded event: %v", err)
		}
	}

	return &dto.SummarizeResponse{Summary: state.SummaryText()}, nil
}

func (cs *chatService) History(ctx context.Context, sessionId string) (*dto.HistoryResponse, error) {
	records, err := cs.memoryRepo.History(ctx, sessionId)
	if err != nil {
		return nil, err
	}

	turns := make([]dto.HistoryTurn, 0, len(records))
	for _, record := range records {
		turns = append(turns, dto.HistoryTurn{
			Question:  record.Question,
			Answer:    record.Answer,
			CreatedAt: record.CreatedAt,
		})
	}

	response := &dto.HistoryResponse{
		SessionId: sessionId,
		Turns:     turns,
		TurnCount: len(turns),
	}
	if activity, found := cs.consumer.Activity(sessionId); found {
		lastActivity := activity.LastActivity
		response.LastActivity = &lastActivity
	}
	return response, nil
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_rag.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM-RAG] ", log.LstdFlags)
	}
	return log.New(file, "[LLM-RAG] ", log.LstdFlags)
}
