package chatsvc

import (
	"context"
	"fmt"
	"strings"

	iriscore "github.com/petal-labs/iris/core"
	"github.com/petal-labs/iris/providers"
	// Auto-register common providers.
	_ "github.com/petal-labs/iris/providers/anthropic"
	_ "github.com/petal-labs/iris/providers/ollama"
	_ "github.com/petal-labs/iris/providers/openai"
	"github.com/pkg/errors"

	"github.com/VarunPasupunuri/mind-sprouts/core"
)

// ErrUnavailable is returned when no tip can be produced; callers degrade to
// their static fallback instead of failing the request.
var ErrUnavailable = errors.New("tip service unavailable")

const systemPrompt = "You are an encouraging eco-mentor for school students. " +
	"Reply with one short, concrete and actionable environmental tip. " +
	"Two sentences at most, no lists, no emoji."

// chatClient is the slice of the provider surface the tips need.
type chatClient interface {
	Chat(ctx context.Context, req *iriscore.ChatRequest) (*iriscore.ChatResponse, error)
}

// TipService turns a student's current challenges into a personalised
// eco tip via an LLM provider.
type TipService struct {
	client chatClient
	model  string
	log    core.Logger
}

// NewService instantiates the named provider ("openai", "anthropic",
// "ollama") from the registry.
func NewService(providerName, apiKey, model string, log core.Logger) (*TipService, error) {
	provider, err := providers.Create(providerName, apiKey)
	if err != nil {
		return nil, fmt.Errorf("creating provider %q: %w", providerName, err)
	}
	return &TipService{client: provider, model: model, log: log}, nil
}

// GenerateTip asks for a tip tailored to what the user has already
// accomplished, plus an optional free-form goal. Any provider failure
// surfaces as ErrUnavailable.
func (svc *TipService) GenerateTip(ctx context.Context, name string, completedTitles []string, goal string) (string, error) {
	prompt := new(strings.Builder)
	fmt.Fprintf(prompt, "Student %s has completed these eco challenges:\n", name)
	for _, t := range completedTitles {
		fmt.Fprintf(prompt, "- %s\n", t)
	}
	if len(completedTitles) == 0 {
		prompt.WriteString("(none yet)\n")
	}
	if goal != "" {
		fmt.Fprintf(prompt, "Their current goal: %s\n", goal)
	}
	prompt.WriteString("Give them one new tip for today.")

	resp, err := svc.client.Chat(ctx, &iriscore.ChatRequest{
		Model: iriscore.ModelID(svc.model),
		Messages: []iriscore.Message{
			{Role: iriscore.RoleSystem, Content: systemPrompt},
			{Role: iriscore.RoleUser, Content: prompt.String()},
		},
	})
	if err != nil {
		svc.log.Warn("tip generation failed", "error", err)
		return "", ErrUnavailable
	}

	tip := strings.TrimSpace(resp.Output)
	if tip == "" {
		return "", ErrUnavailable
	}
	return tip, nil
}
