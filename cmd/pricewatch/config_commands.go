package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pricewatch/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigNewCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))

	return configCmd
}

func newConfigNewCommand() *cobra.Command {
	var targetPath string

	cmd := &cobra.Command{
		Use:         "new",
		Short:       "Create an annotated sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			}

			written, err := config.WriteSample(target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", written)
			fmt.Fprintln(out, "Edit paths.input_dir to point at your snapshot tree before running a reconcile.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n\n", ctx.configPath)
			fmt.Fprintf(out, "paths.input_dir      = %s\n", cfg.Paths.InputDir)
			fmt.Fprintf(out, "paths.data_dir       = %s\n", cfg.Paths.DataDir)
			fmt.Fprintf(out, "paths.log_dir        = %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "paths.unmatched_log  = %s\n", cfg.Paths.UnmatchedLog)
			fmt.Fprintf(out, "images.enabled       = %s\n", yesNo(cfg.Images.Enabled))
			fmt.Fprintf(out, "storage.backend      = %s\n", cfg.Storage.Backend)
			if cfg.Storage.Backend == config.StorageBackendS3 {
				fmt.Fprintf(out, "storage.endpoint     = %s\n", cfg.Storage.Endpoint)
				fmt.Fprintf(out, "storage.bucket       = %s\n", cfg.Storage.Bucket)
			}
			fmt.Fprintf(out, "logging.format       = %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "logging.level        = %s\n", cfg.Logging.Level)
			return nil
		},
	}
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
