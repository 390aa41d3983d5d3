package replygen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"review_copilot/internal/adapters/observability"
)

const systemPrompt = `You are a professional customer service agent responding to customer feedback or reviews.
Your response should:
- Acknowledge and thank them for their feedback,
- Address their concern or dissatisfaction,
- Offer to help or request more info (or escalation) if needed,
- If it's serious, ask them to contact support at customerservice@email.com.
- Sound human, polite, empathic, and professional.`

// FallbackReply is returned whenever the completion service misbehaves, so
// callers never see an empty reply out of this collaborator.
const FallbackReply = "Thank you for your feedback. " +
	"We encountered a technical issue while generating a reply, " +
	"but we value your concern. Please reach out to us at customerservice@email.com, " +
	"and we'll be glad to assist you."

type Client struct {
	cl    *openai.Client
	model string
	rl    *rate.Limiter
}

// New builds a reply generator on the OpenAI chat completion API. baseURL
// overrides the endpoint (used against compatible gateways and in tests);
// rps caps outbound calls client-side.
func New(apiKey, baseURL, model string, rps int) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if rps <= 0 {
		rps = 5
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	return &Client{
		cl:    openai.NewClientWithConfig(cfg),
		model: model,
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// GenerateReply drafts a reply for the review text. Single attempt; service
// errors and malformed responses degrade to FallbackReply rather than
// propagating. The only error path is context cancellation, which callers
// treat as total collaborator unavailability.
func (c *Client) GenerateReply(ctx context.Context, reviewText string) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.cl.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Customer's review: %q", reviewText)},
		},
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		observability.ObserveExternal("openai", "chat", 0, time.Since(start))
		log.Warn().Err(err).Msg("reply generation failed, using fallback reply")
		return FallbackReply, nil
	}
	observability.ObserveExternal("openai", "chat", http.StatusOK, time.Since(start))

	if len(resp.Choices) == 0 {
		log.Warn().Msg("completion returned no choices, using fallback reply")
		return FallbackReply, nil
	}
	reply := strings.TrimSpace(resp.Choices[0].Message.Content)
	if reply == "" {
		log.Warn().Msg("completion returned empty text, using fallback reply")
		return FallbackReply, nil
	}
	return reply, nil
}
