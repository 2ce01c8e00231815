package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/resilience"
)

var _ application.LanguageModel = (*Client)(nil)

// DefaultModel is the model used when none is configured
const DefaultModel = "gemini-2.5-flash"

// Config holds the Gemini client settings
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// DefaultConfig returns a Config without credentials
func DefaultConfig() *Config {
	return &Config{
		Model:   DefaultModel,
		Timeout: 20 * time.Second,
	}
}

// generator is the slice of genai.Models the client uses
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client calls the Gemini API. A client built without an API key answers
// every call with application.ErrModelNotConfigured.
type Client struct {
	models  generator
	model   string
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

// New creates a Gemini client
func New(ctx context.Context, config *Config, logger *logging.Logger) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	c := newClient(nil, config, logger)
	if config.APIKey == "" {
		c.logger.Warn("Gemini API key not set, assistant features are disabled")
		return c, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c.models = client.Models
	return c, nil
}

func newClient(models generator, config *Config, logger *logging.Logger) *Client {
	model := config.Model
	if model == "" {
		model = DefaultModel
	}
	cb := resilience.ModelCircuitBreakerConfig("gemini")
	return &Client{
		models:  models,
		model:   model,
		timeout: config.Timeout,
		breaker: resilience.NewCircuitBreaker(cb, logger.Logger),
		logger:  logger.WithComponent("gemini"),
	}
}

// Generate returns the model's text for prompt
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, nil)
}

// GenerateCommand asks for a JSON reply constrained to the command shape
func (c *Client) GenerateCommand(ctx context.Context, prompt string) ([]byte, error) {
	text, err := c.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   commandSchema,
	})
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func (c *Client) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if c.models == nil {
		return "", application.ErrModelNotConfigured
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var text string
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
		if err != nil {
			return err
		}
		text = strings.TrimSpace(resp.Text())
		if text == "" {
			return errors.New("empty response")
		}
		return nil
	})
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("Gemini request failed", "model", c.model)
		return "", fmt.Errorf("gemini: %w", err)
	}
	return text, nil
}

// commandSchema mirrors the JSON schema the assistant validates replies with
var commandSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"intent": {
			Type: genai.TypeString,
			Enum: []string{
				application.IntentCreateProduct,
				application.IntentCreateOperation,
				application.IntentCheckStock,
				application.IntentUnknown,
			},
		},
		"data": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"productName":    {Type: genai.TypeString},
				"quantity":       {Type: genai.TypeInteger},
				"partnerName":    {Type: genai.TypeString},
				"operationType":  {Type: genai.TypeString, Enum: []string{"IN", "OUT", "INT"}},
				"targetLocation": {Type: genai.TypeString},
			},
		},
		"reply": {Type: genai.TypeString},
	},
	Required: []string{"intent", "reply"},
}
