package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"functionallab/coach-os/internal/generator"
)

// maxChatTurns caps how much prior conversation is forwarded.
const maxChatTurns = 20

// --- Service Interface ---
type AssistantService interface {
	Chat(ctx context.Context, history []generator.ChatMessage, message string) (string, error)
}

// assistantService is stateless; the caller keeps the conversation.
type assistantService struct {
	generator generator.Generator
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewAssistantService(gen generator.Generator, timeout time.Duration, logger zerolog.Logger) AssistantService {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &assistantService{
		generator: gen,
		timeout:   timeout,
		logger:    logger.With().Str("component", "assistant").Logger(),
	}
}

func (s *assistantService) Chat(ctx context.Context, history []generator.ChatMessage, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", validationError("message cannot be empty")
	}
	for _, m := range history {
		if m.Role != generator.RoleUser && m.Role != generator.RoleModel {
			return "", validationError("unknown chat role %q", m.Role)
		}
	}
	if len(history) > maxChatTurns {
		history = history[len(history)-maxChatTurns:]
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.generator.Chat(ctx, history, message)
	if err != nil {
		s.logger.Error().Err(err).Msg("Assistant request failed")
		return "", fmt.Errorf("%w: %w", ErrChatFailed, err)
	}
	return reply, nil
}
