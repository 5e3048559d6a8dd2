package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/tventura/mibot/internal/domain"
)

// Generation settings. High temperature keeps the persona loose and
// chatty instead of assistant-like.
const (
	temperature     = 0.9
	topP            = 0.9
	maxOutputTokens = 1024
)

type GeminiClient struct {
	clients   map[string]*genai.Client
	modelName string
}

// NewGeminiClient creates one SDK client per credential, so the pipeline
// can switch credentials between calls without reconnecting.
func NewGeminiClient(ctx context.Context, modelName string, credentials []string) (*GeminiClient, error) {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}
	if len(credentials) == 0 {
		return nil, fmt.Errorf("at least one credential is required")
	}

	clients := make(map[string]*genai.Client, len(credentials))
	for _, key := range credentials {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("creating genai client: %w", err)
		}
		clients[key] = client
	}

	return &GeminiClient{
		clients:   clients,
		modelName: modelName,
	}, nil
}

// Generate implements domain.Generator using the Gemini API. An empty
// reply with nil error is a valid outcome; the pipeline substitutes for
// it.
func (g *GeminiClient) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	client, ok := g.clients[req.Credential]
	if !ok {
		return "", fmt.Errorf("no client for the requested credential")
	}

	// 1) History (user / agent) as conversation
	var contents []*genai.Content
	for _, turn := range req.History {
		var role genai.Role
		switch turn.Role {
		case domain.RoleAgent:
			role = genai.RoleModel
		default:
			role = genai.RoleUser
		}

		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}

	// 2) Current user message
	contents = append(contents, genai.NewContentFromText(req.Message, genai.RoleUser))

	// 3) Model config (without genai.Ptr to avoid generic issues)
	temp := float32(temperature)
	tp := float32(topP)

	cfg := &genai.GenerateContentConfig{
		// According to official examples, the role here is usually RoleUser, not "system"
		SystemInstruction: genai.NewContentFromText(req.Preamble, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &tp,
		MaxOutputTokens:   int32(maxOutputTokens),
	}

	res, err := client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", classifyError(err)
	}

	return res.Text(), nil
}

// classifyError folds provider failures into the two classes the pipeline
// tells apart: the configured model does not exist, and everything else.
func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrModelUnavailable, apiErr.Message)
	}
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %v", domain.ErrModelUnavailable, err)
	}
	return fmt.Errorf("generate content: %w", err)
}
