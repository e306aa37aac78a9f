package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai/anthropic"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai/openai"
	"github.com/Ophelia-Chat/ophelia-sub001/providers/ai/openrouter"
)

// ProviderID identifies one of the supported provider adapters.
type ProviderID string

const (
	ProviderAnthropic  ProviderID = "anthropic"
	ProviderOpenAI     ProviderID = "openai"
	ProviderOpenRouter ProviderID = "openrouter"
)

// Client is the unified streaming façade. It owns one constructed adapter
// per provider identity and an active selection; every call dispatches to
// the active adapter. The selection sits behind a lock so Use can race with
// streaming calls safely, but a call in flight keeps the adapter it resolved
// at dispatch time.
type Client struct {
	mu     sync.RWMutex
	active ProviderID

	anthropic  ai.Provider
	openai     ai.Provider
	openrouter ai.Provider
}

// Option configures a Client at construction.
type Option func(*Client)

// WithProvider replaces the adapter registered for the given identity.
// Intended for tests and callers that need a preconfigured adapter; unknown
// identities are ignored.
func WithProvider(id ProviderID, provider ai.Provider) Option {
	return func(c *Client) {
		switch id {
		case ProviderAnthropic:
			c.anthropic = provider
		case ProviderOpenAI:
			c.openai = provider
		case ProviderOpenRouter:
			c.openrouter = provider
		}
	}
}

// WithActive sets the initial active provider. The default is anthropic.
func WithActive(id ProviderID) Option {
	return func(c *Client) {
		c.active = id
	}
}

// New returns a Client with all three adapters constructed from their
// environment variables. Missing credentials are not an error here; a call
// through an adapter with no key fails with the invalid-credential kind
// before any network activity.
func New(options ...Option) *Client {
	c := &Client{
		active:     ProviderAnthropic,
		anthropic:  anthropic.New(),
		openai:     openai.New(),
		openrouter: openrouter.New(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Use switches the active provider for subsequent calls. Calls already in
// flight are unaffected. An unknown identity is rejected and the current
// selection is kept.
func (c *Client) Use(id ProviderID) error {
	if _, err := c.provider(id); err != nil {
		return err
	}
	c.mu.Lock()
	c.active = id
	c.mu.Unlock()
	return nil
}

// Active returns the current provider selection.
func (c *Client) Active() ProviderID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.active
}

// StreamCompletion dispatches the request to the active adapter. The façade
// adds no retry or failover behavior; a failed call reports its classified
// error and the caller decides what to do next.
func (c *Client) StreamCompletion(ctx context.Context, request ai.CompletionRequest) (*ai.CompletionStream, error) {
	c.mu.RLock()
	active := c.active
	c.mu.RUnlock()

	provider, err := c.provider(active)
	if err != nil {
		return nil, err
	}
	return provider.StreamCompletion(ctx, request)
}

// UpdateAPIKey forwards a credential rotation to the adapter for the given
// identity, active or not. Streams in flight on that adapter keep the key
// they captured at call start.
func (c *Client) UpdateAPIKey(id ProviderID, apiKey string) error {
	provider, err := c.provider(id)
	if err != nil {
		return err
	}
	provider.UpdateAPIKey(apiKey)
	return nil
}

// provider resolves an identity to its adapter. The switch is closed on
// purpose: an unknown identity is a caller bug, reported as the
// invalid-request kind rather than silently routed anywhere.
func (c *Client) provider(id ProviderID) (ai.Provider, error) {
	switch id {
	case ProviderAnthropic:
		return c.anthropic, nil
	case ProviderOpenAI:
		return c.openai, nil
	case ProviderOpenRouter:
		return c.openrouter, nil
	default:
		return nil, ai.NewError(ai.ErrInvalidRequest, fmt.Sprintf("unknown provider %q", id))
	}
}
