package actions

import (
	"context"
	"fmt"
	"log"

	consultmodule "github.com/stake-plus/expertdesk/src/actions/consult"
	webmodule "github.com/stake-plus/expertdesk/src/actions/web"
	aicore "github.com/stake-plus/expertdesk/src/ai/core"
	"github.com/stake-plus/expertdesk/src/config"
	"github.com/stake-plus/expertdesk/src/consult"
	"github.com/stake-plus/expertdesk/src/events"
	"github.com/stake-plus/expertdesk/src/persona"
)

// NewService builds the consultation service from configuration. A missing
// credential is not fatal here; it surfaces as a provider error per request.
func NewService(cfg config.AIConfig) (*consult.Service, error) {
	if cfg.OpenAIKey == "" && cfg.ClaudeKey == "" {
		log.Printf("actions: no AI provider key configured; consultations will report an error")
	}
	client, err := aicore.NewClient(cfg.FactoryConfig())
	if err != nil {
		log.Printf("actions: AI client init: %v", err)
		client = unavailableClient{err: err}
	}
	return consult.NewService(persona.Default(), client,
		consult.WithModel(cfg.Model),
		consult.WithTemperature(cfg.Temperature),
	)
}

// NewPublisher returns a Redis stream publisher, or a no-op one when no URL is set.
func NewPublisher(ctx context.Context, cfg config.EventsConfig) events.Publisher {
	if cfg.RedisURL == "" {
		return events.Nop{}
	}
	pub, err := events.NewRedis(cfg.RedisURL, cfg.Stream)
	if err != nil {
		log.Printf("actions: events disabled: %v", err)
		return events.Nop{}
	}
	if err := pub.Ping(ctx); err != nil {
		log.Printf("actions: redis ping failed, events may be dropped: %v", err)
	}
	return pub
}

// StartAll wires up enabled front-end modules and starts the manager.
func StartAll(ctx context.Context, cfg config.Config) (*Manager, error) {
	svc, err := NewService(cfg.AI)
	if err != nil {
		return nil, fmt.Errorf("actions: init consult service: %w", err)
	}
	pub := NewPublisher(ctx, cfg.Events)

	mgr := NewManager()

	if cfg.Web.Enabled {
		mod, err := webmodule.NewModule(cfg.Web, svc, pub)
		if err != nil {
			return nil, fmt.Errorf("actions: init web module: %w", err)
		}
		if err := mgr.Add(mod); err != nil {
			return nil, fmt.Errorf("actions: add web module: %w", err)
		}
	} else {
		log.Printf("actions: web module disabled via configuration")
	}

	if cfg.Discord.Enabled {
		mod, err := consultmodule.NewModule(cfg.Discord, svc, pub)
		if err != nil {
			return nil, fmt.Errorf("actions: init discord module: %w", err)
		}
		if err := mgr.Add(mod); err != nil {
			return nil, fmt.Errorf("actions: add discord module: %w", err)
		}
	} else {
		log.Printf("actions: discord module disabled via configuration")
	}

	if err := mgr.Start(ctx); err != nil {
		return nil, err
	}

	return mgr, nil
}

// unavailableClient stands in when the provider could not be constructed, so
// every consultation reports the construction error as a Failure.
type unavailableClient struct {
	err error
}

func (u unavailableClient) Complete(context.Context, []aicore.Message, aicore.Options) (string, error) {
	return "", u.err
}
