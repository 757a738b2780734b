package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pricewatch/internal/pricing"
)

func newStoresCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List known stores and their last scrape times",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := pricing.Open(cfg)
			if err != nil {
				return fmt.Errorf("open pricing database: %w", err)
			}
			defer store.Close()

			records, err := store.ListStores(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No stores recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				scraped := "never"
				if !record.LastScrapedAt.IsZero() {
					scraped = record.LastScrapedAt.UTC().Format(time.RFC3339)
				}
				rows = append(rows, []string{record.Name, record.ID, scraped})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Id", "Last Scraped"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}
