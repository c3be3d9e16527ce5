package enrichment

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/solentra/enrichflow/config"
	"github.com/solentra/enrichflow/internal/models"
)

// OpenAIEnricher asks a chat-completion model for the summary and label.
type OpenAIEnricher struct {
	client *openai.Client
	model  openai.ChatModel
	logger *slog.Logger
}

// NewOpenAIEnricher builds the enricher with its own HTTP client so the
// configured request timeout applies to every completion call.
func NewOpenAIEnricher(cfg config.EnricherConfig, logger *slog.Logger) *OpenAIEnricher {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIEnricher{
		client: openai.NewClient(opts...),
		model:  openai.ChatModel(cfg.Model),
		logger: logger,
	}
}

// Enrich sends one user-role message and parses the response leniently.
// Only transport and service failures return an error.
func (e *OpenAIEnricher) Enrich(ctx context.Context, text string) (models.Analysis, error) {
	chatCompletion, err := e.client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(PromptFor(text)),
			}),
			Model: openai.F(e.model),
		})
	if err != nil {
		e.logger.Error("[OpenAIEnricher] Completion request failed", slog.String("error", err.Error()))
		return models.Analysis{}, &EnrichError{Provider: "openai", Err: err}
	}

	if len(chatCompletion.Choices) == 0 {
		e.logger.Error("[OpenAIEnricher] Response contained no choices")
		return models.Analysis{}, &EnrichError{Provider: "openai", Err: errors.New("response contained no choices")}
	}

	content := cleanResponse(chatCompletion.Choices[0].Message.Content)
	e.logger.Debug("[OpenAIEnricher] Received completion", slog.Int("length", len(content)))

	return ParseAnalysis(content), nil
}

// cleanResponse trims whitespace and the markdown fences some models wrap
// around their output.
func cleanResponse(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```text")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
