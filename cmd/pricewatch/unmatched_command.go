package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pricewatch/internal/unmatched"
)

func newUnmatchedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "unmatched",
		Short: "Show the unmatched-record report from the last run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			log := unmatched.New(cfg.Paths.UnmatchedLog)
			contents, err := log.Read()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if strings.TrimSpace(contents) == "" {
				fmt.Fprintln(out, "No unmatched report found. Run `pricewatch reconcile` first.")
				return nil
			}
			fmt.Fprint(out, contents)
			return nil
		},
	}
}
