package pipeline

import (
	"fmt"
	"strings"

	"ai-chat-rag-be/internal/entity"
)

// historyText serializes conversation turns the way the generation model
// sees them: one "User:"/"Bot:" pair per turn, ascending timestamp order.
func historyText(records []*entity.MemoryRecord) string {
	lines := make([]string, 0, len(records))
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("User: %s\nBot: %s", r.Question, r.Answer))
	}
	return strings.Join(lines, "\n")
}

func answerPrompt(context, history, question string) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant.\n\n")
	b.WriteString("Context:\n")
	b.WriteString(context)
	b.WriteString("\n\nConversation so far:\n")
	b.WriteString(history)
	b.WriteString("\n\nCurrent question:\n")
	b.WriteString(question)
	b.WriteString("\n\nAnswer clearly:")
	return b.String()
}

func suggestPrompt(question, answer string) string {
	var b strings.Builder
	b.WriteString("Based on the answer below, suggest 2 follow-up questions.\n\n")
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\nAnswer: ")
	b.WriteString(answer)
	b.WriteString("\n\nOnly return the questions, separated by new lines.")
	return b.String()
}

func summaryPrompt(history string) string {
	var b strings.Builder
	b.WriteString("Summarize this conversation:\n\n")
	b.WriteString(history)
	b.WriteString("\n\nGive a brief overview in a few sentences.")
	return b.String()
}
