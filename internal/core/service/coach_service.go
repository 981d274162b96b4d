package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/focusflow/focusflow-api/internal/api/metrics"
	"github.com/focusflow/focusflow-api/internal/core/ports"
)

// maxHistoryTurns bounds the conversation context forwarded upstream.
const maxHistoryTurns = 5

const coachSystemPrompt = "You are FocusFlow's productivity coach. " +
	"Give short, practical advice about focus habits, time blocking and breaks. " +
	"Stay on the topic of productivity; politely decline anything else."

const emptyMessageReply = "Your message is empty. Tell me what you are working on and I will help you focus."

const fallbackReply = "Sorry, I cannot reach your coach right now. Please try again in a moment."

// CoachService bridges chat requests to the hosted generative model.
type CoachService struct {
	client ports.ModelClient
	logger zerolog.Logger
}

func NewCoachService(client ports.ModelClient, logger zerolog.Logger) *CoachService {
	return &CoachService{client: client, logger: logger}
}

// Chat forwards one user message plus trimmed history to the model. The
// caller always gets a renderable response: empty input short-circuits
// without an upstream call, and any upstream failure is replaced by a fixed
// fallback string rather than propagated.
func (s *CoachService) Chat(ctx context.Context, input ports.ChatInput) (*ports.ChatResult, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		metrics.CoachRequestsTotal.WithLabelValues("empty").Inc()
		return &ports.ChatResult{Response: emptyMessageReply, Model: s.client.ModelName()}, nil
	}

	turns := buildTurns(input.History, message)

	start := time.Now()
	text, err := s.client.Generate(ctx, turns)
	metrics.CoachRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", input.UserID).Msg("coach upstream failed, returning fallback")
		} else {
			s.logger.Warn().Str("user_id", input.UserID).Msg("coach upstream returned no text, returning fallback")
		}
		metrics.CoachRequestsTotal.WithLabelValues("fallback").Inc()
		return &ports.ChatResult{Response: fallbackReply, Model: s.client.ModelName(), Fallback: true}, nil
	}

	metrics.CoachRequestsTotal.WithLabelValues("ok").Inc()
	return &ports.ChatResult{Response: text, Model: s.client.ModelName()}, nil
}

// buildTurns trims history to the last maxHistoryTurns turns, appends the
// current message and prepends the system instruction to the first turn:
// the upstream model has no separate system-role channel.
func buildTurns(history []ports.ChatTurn, message string) []ports.ModelTurn {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}

	turns := make([]ports.ModelTurn, 0, len(history)+1)
	for _, h := range history {
		role := "user"
		if h.Role == "assistant" || h.Role == "model" {
			role = "model"
		}
		turns = append(turns, ports.ModelTurn{Role: role, Text: h.Message})
	}
	turns = append(turns, ports.ModelTurn{Role: "user", Text: message})

	turns[0].Text = coachSystemPrompt + "\n\n" + turns[0].Text
	return turns
}
