package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
)

type fakeModels struct {
	text   string
	err    error
	model  string
	config *genai.GenerateContentConfig
	calls  int
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, _ []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(f.text, genai.RoleModel)}},
	}, nil
}

func TestNew_WithoutKey(t *testing.T) {
	c, err := New(context.Background(), &Config{}, logging.Discard())
	require.NoError(t, err)

	_, err = c.Generate(context.Background(), "hello")
	assert.ErrorIs(t, err, application.ErrModelNotConfigured)
	_, err = c.GenerateCommand(context.Background(), "hello")
	assert.ErrorIs(t, err, application.ErrModelNotConfigured)
}

func TestGenerate(t *testing.T) {
	fake := &fakeModels{text: "  Restock chairs.\n"}
	c := newClient(fake, DefaultConfig(), logging.Discard())

	text, err := c.Generate(context.Background(), "summarise")
	require.NoError(t, err)
	assert.Equal(t, "Restock chairs.", text)
	assert.Equal(t, DefaultModel, fake.model)
	assert.Nil(t, fake.config)
}

func TestGenerateCommand_RequestsJSON(t *testing.T) {
	fake := &fakeModels{text: `{"intent":"UNKNOWN","reply":"?"}`}
	c := newClient(fake, &Config{Model: "gemini-test"}, logging.Discard())

	raw, err := c.GenerateCommand(context.Background(), "blorp")
	require.NoError(t, err)
	assert.JSONEq(t, `{"intent":"UNKNOWN","reply":"?"}`, string(raw))

	require.NotNil(t, fake.config)
	assert.Equal(t, "application/json", fake.config.ResponseMIMEType)
	assert.Equal(t, genai.TypeObject, fake.config.ResponseSchema.Type)
	assert.Contains(t, fake.config.ResponseSchema.Properties, "intent")
	assert.Equal(t, "gemini-test", fake.model)
}

func TestGenerate_Errors(t *testing.T) {
	upstream := errors.New("quota exceeded")
	c := newClient(&fakeModels{err: upstream}, DefaultConfig(), logging.Discard())
	_, err := c.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, upstream)

	c = newClient(&fakeModels{text: "   "}, DefaultConfig(), logging.Discard())
	_, err = c.Generate(context.Background(), "x")
	assert.Error(t, err)
}
