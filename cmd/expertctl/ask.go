package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	aicore "github.com/stake-plus/expertdesk/src/ai/core"
	"github.com/stake-plus/expertdesk/src/config"
	"github.com/stake-plus/expertdesk/src/consult"
	"github.com/stake-plus/expertdesk/src/persona"
	"github.com/spf13/cobra"
)

var errConsultFailed = errors.New("consultation failed")

type askOptions struct {
	persona     string
	provider    string
	model       string
	temperature float64
	timeout     time.Duration
}

func getAskCommand() *cobra.Command {
	var opts askOptions

	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Consult a persona; reads the question from stdin when no arguments are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			if len(args) == 0 {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read question: %w", err)
				}
				question = string(raw)
			}
			return runAsk(cmd, opts, question)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.persona, "persona", "p", "programming", "Persona id or alias (programming, health, business, education)")
	flags.StringVar(&opts.provider, "provider", "", "Override AI provider (openai, anthropic)")
	flags.StringVarP(&opts.model, "model", "m", "", "Override model name")
	flags.Float64Var(&opts.temperature, "temp", 0, "Override sampling temperature")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Request timeout (0 keeps the provider default)")

	return cmd
}

func runAsk(cmd *cobra.Command, opts askOptions, question string) error {
	p, err := persona.Default().Resolve(opts.persona)
	if err != nil {
		return err
	}
	if err := consult.ValidateQuestion(question); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), consult.EmptyQuestionWarning)
		return err
	}

	aiCfg := config.LoadAIConfig()
	if opts.provider != "" {
		aiCfg.Provider = opts.provider
		aiCfg.Model = aicore.ResolveModelName(opts.provider, opts.model)
	} else if opts.model != "" {
		aiCfg.Model = opts.model
	}
	if opts.temperature > 0 {
		aiCfg.Temperature = opts.temperature
	}
	factoryCfg := aiCfg.FactoryConfig()

	client, err := clientProvider(factoryCfg)
	if err != nil {
		return fmt.Errorf("client init: %w", err)
	}
	svc, err := consult.NewService(persona.Default(), client,
		consult.WithModel(factoryCfg.Model),
		consult.WithTemperature(aiCfg.Temperature),
	)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	res := svc.Consult(ctx, p.ID, question)
	if !res.OK() {
		fmt.Fprintln(cmd.ErrOrStderr(), res.Message())
		return errConsultFailed
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Answer())
	return nil
}
