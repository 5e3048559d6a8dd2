package llm

import (
	"context"
	"fmt"

	"github.com/tventura/mibot/internal/domain"
)

type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

// Generate answers in the persona's register without calling any
// provider, for local runs and tests.
func (m *MockLLM) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	return fmt.Sprintf("jaja me dijiste %q y no se q responder", req.Message), nil
}
