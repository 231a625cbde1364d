package main

import (
	aicore "github.com/stake-plus/expertdesk/src/ai/core"
	_ "github.com/stake-plus/expertdesk/src/ai/providers"
	"github.com/spf13/cobra"
)

// clientProvider is swapped out in tests.
var clientProvider = func(cfg aicore.FactoryConfig) (aicore.Client, error) {
	return aicore.NewClient(cfg)
}

func getRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "expertctl",
		Short:         "Ask one of the expert personas a question from the terminal",
		SilenceUsage: true,
	}
	root.AddCommand(getPersonasCommand())
	root.AddCommand(getAskCommand())
	return root
}
