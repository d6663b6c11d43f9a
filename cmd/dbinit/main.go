// dbinit bootstraps, inspects and resets the webstore database from the
// command line. Connection settings come from the same environment
// variables the server reads.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"webstore-service/internal/config"
	"webstore-service/internal/schema"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:           "dbinit",
		Short:         "Bootstrap and reset the webstore database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(initCmd(logger), cleanCmd(logger), statusCmd(logger))

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newManager(logger zerolog.Logger) (*schema.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return schema.NewManager(cfg.Database, logger), nil
}

func initCmd(logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database and tables if absent and load demo rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(logger)
			if err != nil {
				return err
			}
			return m.Initialize(cmd.Context())
		},
	}
}

func cleanCmd(logger zerolog.Logger) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Drop the database and reinitialize it from scratch",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(logger)
			if err != nil {
				return err
			}

			if !yes && !confirm(cmd, "This will drop the database and all its data. Continue? (yes/no): ") {
				logger.Info().Msg("operation cancelled")
				return nil
			}

			return m.Clean(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func statusCmd(logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report the row count of each table",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(logger)
			if err != nil {
				return err
			}

			status, err := m.Status(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range status {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %d\n", t.Table, t.Rows)
			}
			return nil
		},
	}
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "yes" || answer == "y"
}
