package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scrypster/navigator/internal/engine"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [role]",
		Short: "Show the person type and synthesis config for a role",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := strings.Join(args, " ")
			pt := engine.Classify(role)
			cfg := engine.ConfigFor(pt)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Role:        %s\n", role)
			fmt.Fprintf(out, "Person type: %s\n", pt)
			fmt.Fprintf(out, "Focus:       %s\n", strings.Join(cfg.Focus, ", "))
			fmt.Fprintf(out, "Style:       %s\n", cfg.TalkingPointStyle)
			fmt.Fprintf(out, "Depth:       %s\n", cfg.MockConversationDepth)
			return nil
		},
	}
}
