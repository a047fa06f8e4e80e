package services

import (
	"context"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"halifax-hub/internal/config"
	apperrors "halifax-hub/internal/errors"
)

// CareerModel is the one call the career flow needs from a language
// model. Keeping it this small makes the flow trivial to test with a
// canned model.
type CareerModel interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const llmTemperature = 0.7

// LLMService wraps the OpenAI chat client. The client is created once
// and reused for every request.
type LLMService struct {
	client llms.Model
	logger *zap.Logger
}

// NewCareerModel initializes the OpenAI client. A missing key or a
// failed init does not stop the server, career generation just answers
// 503 until a key is configured.
func NewCareerModel(cfg *config.Config, logger *zap.Logger) CareerModel {
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY is empty, career generation disabled")
		return &disabledModel{}
	}

	llm, err := openai.New(
		openai.WithToken(cfg.OpenAIAPIKey),
		openai.WithModel(cfg.OpenAIModel),
	)
	if err != nil {
		logger.Warn("failed to create OpenAI client, career generation disabled", zap.Error(err))
		return &disabledModel{}
	}

	return &LLMService{client: llm, logger: logger}
}

// Complete sends one system+user exchange and returns the raw text of
// the first choice.
func (s *LLMService) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := s.client.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, system),
			llms.TextParts(llms.ChatMessageTypeHuman, user),
		},
		llms.WithTemperature(llmTemperature),
	)
	if err != nil {
		return "", apperrors.External("language model request failed", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.External("language model returned no choices", nil)
	}
	return resp.Choices[0].Content, nil
}

// disabledModel stands in when no API key is configured.
type disabledModel struct{}

func (d *disabledModel) Complete(ctx context.Context, system, user string) (string, error) {
	return "", apperrors.Unavailable("OpenAI API key not configured, set OPENAI_API_KEY to enable AI suggestions", nil)
}
