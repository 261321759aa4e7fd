package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const (
	sentimentPrompt = `You are an AI journaling assistant. Analyze the sentiment of the following journal entry.
Answer with "sentiment" (one of positive, negative, neutral), "score" (a number from -1 to 1)
and "summary" (one sentence describing the emotional tone).

Journal Entry:
%s`

	reflectionPrompt = `You are an AI journaling assistant. Analyze the following journal entries and provide a summary
of the overall sentiment and themes, and then generate a writing prompt based on the mood reflected in the entries.

Journal Entries:
%s`
)

// generator is the part of the genai client used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini asks a Gemini model for structured JSON answers.
type Gemini struct {
	models generator
	model  string
}

// NewGemini creates a client for model. An empty apiKey lets the SDK read
// GEMINI_API_KEY or GOOGLE_API_KEY from the environment.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Gemini{models: client.Models, model: model}, nil
}

func (g *Gemini) Sentiment(ctx context.Context, text string) (Sentiment, error) {
	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"sentiment": {Type: genai.TypeString, Enum: []string{"positive", "negative", "neutral"}},
			"score":     {Type: genai.TypeNumber},
			"summary":   {Type: genai.TypeString},
		},
		Required: []string{"sentiment", "score", "summary"},
	}

	var out Sentiment
	if err := g.generateJSON(ctx, fmt.Sprintf(sentimentPrompt, text), schema, &out); err != nil {
		return Sentiment{}, err
	}
	return out.normalize(), nil
}

func (g *Gemini) Reflect(ctx context.Context, entries string) (Reflection, error) {
	schema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {Type: genai.TypeString, Description: "A summary of the overall sentiment and themes in the journal entries."},
			"prompt":  {Type: genai.TypeString, Description: "A writing prompt based on the mood reflected in the journal entries."},
		},
		Required: []string{"summary", "prompt"},
	}

	var out Reflection
	if err := g.generateJSON(ctx, fmt.Sprintf(reflectionPrompt, entries), schema, &out); err != nil {
		return Reflection{}, err
	}
	if err := out.validate(); err != nil {
		return Reflection{}, err
	}
	return out, nil
}

func (g *Gemini) generateJSON(ctx context.Context, prompt string, schema *genai.Schema, dst any) error {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		return fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return errors.New("empty model response")
	}
	if err := json.Unmarshal([]byte(text), dst); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if p != nil && !p.Thought {
			b.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(b.String())
}
