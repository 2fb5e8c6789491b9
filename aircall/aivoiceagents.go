package aircall

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

// AIVoiceAgent represents an AI voice agent answering calls on a line.
// Agents are identified by an opaque string ID.
type AIVoiceAgent struct {
	ID        string   `json:"id"`
	Name      string   `json:"name,omitempty"`
	Status    string   `json:"status,omitempty"`
	Language  string   `json:"language,omitempty"`
	Voice     string   `json:"voice,omitempty"`
	Greeting  string   `json:"greeting,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	Numbers   []Number `json:"numbers,omitempty"`
}

func (a *AIVoiceAgent) validate() error {
	if a.ID == "" {
		return errors.New("ai voice agent is missing required field id")
	}
	return nil
}

// AIVoiceAgentsService exposes the AI voice agent endpoints.
type AIVoiceAgentsService struct {
	client *Client
}

// Get retrieves a single agent by ID.
func (s *AIVoiceAgentsService) Get(ctx context.Context, id string) (*AIVoiceAgent, error) {
	if id == "" {
		return nil, newValidationError("agent id is required")
	}
	return fetchOne[AIVoiceAgent](ctx, s.client, http.MethodGet, "ai-voice-agents/"+url.PathEscape(id), nil, nil, "ai_voice_agent")
}

// List returns a lazy iterator over all agents.
func (s *AIVoiceAgentsService) List() *Iterator[AIVoiceAgent] {
	query := withDefaultPageSize(url.Values{}, s.client.pageSize)
	return newIterator[AIVoiceAgent](s.client, "ai_voice_agents", "ai-voice-agents", query)
}

// Calls returns a lazy iterator over the calls the agent handled.
func (s *AIVoiceAgentsService) Calls(id string, opts *CallListOptions) (*Iterator[Call], error) {
	if id == "" {
		return nil, newValidationError("agent id is required")
	}
	if opts == nil {
		opts = &CallListOptions{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	for key, value := range opts.Filters {
		query.Set(key, value)
	}
	if opts.Order != "" {
		query.Set("order", opts.Order)
	}
	query = withDefaultPageSize(query, s.client.pageSize)

	return newIterator[Call](s.client, "calls", "ai-voice-agents/"+url.PathEscape(id)+"/calls", query), nil
}
