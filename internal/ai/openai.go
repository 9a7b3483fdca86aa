package ai

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"pitchdeck/internal/domain"
)

// Settings configures the OpenAI-backed client. BaseURL allows any
// OpenAI-compatible endpoint.
type Settings struct {
	APIKey  string `json:"api_key"`
	Model   string `json:"model"`
	BaseURL string `json:"base_url,omitempty"`
}

// OpenAIClient implements Client using the official openai-go SDK
// (chat completions).
type OpenAIClient struct {
	model string
	opts  []option.RequestOption
}

func NewOpenAIClient(cfg *Settings) (*OpenAIClient, error) {
	if cfg == nil {
		return nil, errors.New("ai config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; provide ai.api_key")
	}
	if cfg.Model == "" {
		return nil, errors.New("ai model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{model: cfg.Model, opts: opts}, nil
}

func (c *OpenAIClient) complete(ctx context.Context, prompt Prompt, maxTokens int64) (string, error) {
	client := openai.NewClient(c.opts...)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(maxTokens)
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) GenerateDeck(ctx context.Context, problem, solution string) ([]string, error) {
	raw, err := c.complete(ctx, buildDeckPrompt(problem, solution), 2000)
	if err != nil {
		return nil, err
	}
	return splitDeckContent(raw), nil
}

func (c *OpenAIClient) GenerateSlideContent(ctx context.Context, req SlideContentRequest) (string, error) {
	raw, err := c.complete(ctx, buildSlideContentPrompt(req), 2000)
	if err != nil {
		return "", err
	}
	return trimContent(raw), nil
}

func (c *OpenAIClient) GenerateDesignSuggestions(ctx context.Context, req SlideContentRequest) (string, error) {
	raw, err := c.complete(ctx, buildDesignPrompt(req), 500)
	if err != nil {
		return "", err
	}
	return trimContent(raw), nil
}

func (c *OpenAIClient) GenerateSuggestion(ctx context.Context, slideTitle, content, design string, kind domain.SuggestionKind) (string, error) {
	raw, err := c.complete(ctx, buildSuggestionPrompt(slideTitle, content, design, kind), 100)
	if err != nil {
		return "", err
	}
	return trimContent(raw), nil
}

func (c *OpenAIClient) GenerateVisualData(ctx context.Context, visualType domain.VisualType, contextText string) (domain.VisualData, error) {
	raw, err := c.complete(ctx, buildVisualDataPrompt(visualType, contextText), 300)
	if err != nil {
		return domain.VisualData{}, err
	}
	return parseVisualData(visualType, raw), nil
}

func (c *OpenAIClient) AnalyzeDeck(ctx context.Context, slides []domain.SlideExport, wantFeedback bool) (*AnalysisResult, error) {
	raw, err := c.complete(ctx, buildAnalysisPrompt(slides, wantFeedback), 2000)
	if err != nil {
		return nil, err
	}
	return parseAnalysis(raw, wantFeedback), nil
}
