// File: services/chat/assistant.go
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	assistantContextPrefix = "chat:ctx:"
	assistantContextTTL    = 30 * time.Minute
	assistantHistoryLimit  = 20

	assistantPreamble = "You are the support assistant for Homely, a home-services " +
		"marketplace. Help customers with bookings, providers and services. Keep " +
		"answers short. If the customer needs a human, tell them an agent will take over."
)

// contextEntry is one remembered exchange line.
type contextEntry struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// RedisContextStore keeps a rolling window of assistant context per customer.
type RedisContextStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisContextStore(client *redis.Client) *RedisContextStore {
	return &RedisContextStore{client: client, ttl: assistantContextTTL}
}

func (s *RedisContextStore) Get(ctx context.Context, customerID string) ([]contextEntry, error) {
	key := assistantContextPrefix + customerID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []contextEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *RedisContextStore) Append(ctx context.Context, customerID string, entries ...contextEntry) error {
	existing, err := s.Get(ctx, customerID)
	if err != nil {
		return err
	}
	existing = append(existing, entries...)
	if len(existing) > assistantHistoryLimit {
		existing = existing[len(existing)-assistantHistoryLimit:]
	}
	b, err := json.Marshal(existing)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, assistantContextPrefix+customerID, b, s.ttl).Err()
}

// GeminiAssistant answers customer messages with a Gemini model, threading recent
// history through the context store.
type GeminiAssistant struct {
	model *genai.GenerativeModel
	store *RedisContextStore
}

func NewGeminiAssistant(apiKey string, store *RedisContextStore) (*GeminiAssistant, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiAssistant{model: model, store: store}, nil
}

// Reply generates a model answer for the customer's message.
func (g *GeminiAssistant) Reply(ctx context.Context, customerID, text string) (string, error) {
	history, err := g.store.Get(ctx, customerID)
	if err != nil {
		history = nil
	}

	var sb strings.Builder
	sb.WriteString(assistantPreamble)
	sb.WriteString("\n\n")
	for _, entry := range history {
		sb.WriteString(entry.Role)
		sb.WriteString(": ")
		sb.WriteString(entry.Text)
		sb.WriteString("\n")
	}
	sb.WriteString("customer: ")
	sb.WriteString(text)

	resp, err := g.model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			out.WriteString(string(textPart))
		}
	}
	answer := out.String()

	if err := g.store.Append(ctx, customerID,
		contextEntry{Role: "customer", Text: text},
		contextEntry{Role: "assistant", Text: answer},
	); err != nil {
		return answer, nil
	}
	return answer, nil
}
