package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	reply  string
	err    error
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: f.reply}}},
		}},
	}, nil
}

func TestGemini_Sentiment(t *testing.T) {
	gen := &fakeGenerator{reply: `{"sentiment":"Positive","score":0.8,"summary":" A joyful entry. "}`}
	g := &Gemini{models: gen, model: "gemini-test"}

	got, err := g.Sentiment(context.Background(), "Best day ever")
	require.NoError(t, err)

	assert.Equal(t, Sentiment{Sentiment: "positive", Score: 0.8, Summary: "A joyful entry."}, got)
	assert.Equal(t, "gemini-test", gen.model)
	assert.True(t, strings.HasSuffix(gen.prompt, "Best day ever"))
	require.NotNil(t, gen.config)
	assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
	assert.Contains(t, gen.config.ResponseSchema.Required, "summary")
}

func TestGemini_SentimentNormalizes(t *testing.T) {
	gen := &fakeGenerator{reply: `{"sentiment":"melancholic","score":-3,"summary":"A sad evening."}`}
	g := &Gemini{models: gen, model: "m"}

	got, err := g.Sentiment(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "negative", got.Sentiment)
	assert.Equal(t, -1.0, got.Score)
}

func TestGemini_Reflect(t *testing.T) {
	gen := &fakeGenerator{reply: `{"summary":"A busy week.","prompt":"What would you drop?"}`}
	g := &Gemini{models: gen, model: "m"}

	got, err := g.Reflect(context.Background(), "one\n\ntwo")
	require.NoError(t, err)
	assert.Equal(t, Reflection{Summary: "A busy week.", Prompt: "What would you drop?"}, got)
	assert.Contains(t, gen.prompt, "Journal Entries:\none\n\ntwo")
}

func TestGemini_Errors(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"transport", &fakeGenerator{err: errors.New("quota")}},
		{"empty", &fakeGenerator{reply: "  "}},
		{"not json", &fakeGenerator{reply: "Summary: nice"}},
		{"incomplete reflection", &fakeGenerator{reply: `{"summary":"only this"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Gemini{models: tt.gen, model: "m"}
			_, err := g.Reflect(context.Background(), "entries")
			assert.Error(t, err)
		})
	}
}

func TestResponseText(t *testing.T) {
	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: `{"a":`},
				{Text: `1}`},
			}},
		}},
	}
	assert.Equal(t, `{"a":1}`, responseText(resp))
}
