package consult

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	aicore "github.com/stake-plus/expertdesk/src/ai/core"
	"github.com/stake-plus/expertdesk/src/logging"
	"github.com/stake-plus/expertdesk/src/persona"
)

// Service answers one question as one persona with a single provider call.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	registry *persona.Registry
	client   aicore.Client
	opts     aicore.Options
}

// Option adjusts a Service at construction time.
type Option func(*Service)

// WithModel overrides the model identifier sent to the provider.
func WithModel(model string) Option {
	return func(s *Service) {
		if model != "" {
			s.opts.Model = model
		}
	}
}

// WithTemperature overrides the sampling temperature.
func WithTemperature(temp float64) Option {
	return func(s *Service) {
		if temp > 0 {
			s.opts.Temperature = temp
		}
	}
}

// NewService wires a registry and provider client.
func NewService(registry *persona.Registry, client aicore.Client, opts ...Option) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("consult: persona registry is nil")
	}
	if client == nil {
		return nil, fmt.Errorf("consult: AI client is nil")
	}
	s := &Service{
		registry: registry,
		client:   client,
		opts: aicore.Options{
			Model:       aicore.DefaultModelForProvider("openai"),
			Temperature: aicore.DefaultTemperature,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Registry exposes the persona table the service resolves against.
func (s *Service) Registry() *persona.Registry { return s.registry }

// Model reports the model identifier used for every call.
func (s *Service) Model() string { return s.opts.Model }

// Consult resolves the persona's instruction and asks the provider once.
// Callers must reject blank questions with ValidateQuestion first.
func (s *Service) Consult(ctx context.Context, personaID, question string) Result {
	requestID := uuid.NewString()
	start := time.Now()

	p, err := s.registry.Lookup(personaID)
	if err != nil {
		log.Printf("consult: id=%s persona=%q rejected: %v", requestID, personaID, err)
		return Failed(ErrorPrefix + err.Error())
	}

	messages := []aicore.Message{
		{Role: aicore.RoleSystem, Content: p.SystemInstruction},
		{Role: aicore.RoleUser, Content: question},
	}

	answer, err := s.client.Complete(ctx, messages, s.opts)
	if err != nil {
		log.Printf("consult: id=%s persona=%s outcome=failure class=%s elapsed=%s err=%v",
			requestID, p.Alias, logging.Classify(err), time.Since(start).Round(time.Millisecond), err)
		return Failed(ErrorPrefix + err.Error())
	}

	log.Printf("consult: id=%s persona=%s outcome=success elapsed=%s bytes=%d",
		requestID, p.Alias, time.Since(start).Round(time.Millisecond), len(answer))
	return Succeeded(answer)
}
