package main

import (
	"fmt"

	"github.com/stake-plus/expertdesk/src/persona"
	"github.com/spf13/cobra"
)

func getPersonasCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "personas",
		Aliases: []string{"list", "ls"},
		Short:   "List the available expert personas",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range persona.Default().All() {
				fmt.Fprintf(out, "%s (%s)\n  %s\n  ⚠️ %s\n", p.ID, p.Alias, p.Description, p.Caution)
			}
			return nil
		},
	}
}
