package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	defaultModel       = "gemini-2.5-flash"
	defaultTemperature = 0.2
	jsonMIMEType       = "application/json"
)

var (
	errEmptyAnswer     = errors.New("gemini api returned empty response")
	errTruncatedAnswer = errors.New("gemini answer was cut at the output token limit")
)

// Options tune how the model is asked for analysis results.
type Options struct {
	Model string
	// Temperature below zero selects defaultTemperature.
	Temperature float32
	// MaxOutputTokens of zero leaves the model limit in place.
	MaxOutputTokens int32
}

// Generator asks Gemini for JSON analysis results.
type Generator struct {
	client    *genai.Client
	modelName string
	config    *genai.GenerateContentConfig
}

func NewGenerator(ctx context.Context, apiKey string, opts Options) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	return &Generator{client: client, modelName: model, config: generationConfig(opts)}, nil
}

// generationConfig requests a JSON document so the answer can go through the
// same decoder as the analysis service replies.
func generationConfig(opts Options) *genai.GenerateContentConfig {
	temperature := opts.Temperature
	if temperature < 0 {
		temperature = defaultTemperature
	}

	return &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  opts.MaxOutputTokens,
		ResponseMIMEType: jsonMIMEType,
	}
}

// GenerateContent sends the filled analysis prompt and returns the answer text.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return answerText(resp)
}

// answerText returns the text of the first candidate that has one. Thought
// parts are skipped and a candidate cut by the token limit is an error, since
// its JSON would be incomplete.
func answerText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini api returned no response")
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}

		var builder strings.Builder
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought {
				continue
			}
			builder.WriteString(part.Text)
		}

		text := strings.TrimSpace(builder.String())
		if text == "" {
			continue
		}
		if candidate.FinishReason == genai.FinishReasonMaxTokens {
			return "", errTruncatedAnswer
		}
		return text, nil
	}

	return "", errEmptyAnswer
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}
