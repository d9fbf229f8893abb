package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"boardhook/internal/discord"
	"boardhook/internal/files"
	"boardhook/internal/links"
	"boardhook/internal/logging"
	"boardhook/internal/message"
	"boardhook/internal/notify"
	"boardhook/internal/overdue"
	"boardhook/internal/store"
)

func newOverdueScanCommand(ctx *commandContext) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "overdue-scan",
		Short: "Raise notifications for overdue tasks",
		Long: `Scans the database for active tasks past their due date and raises one
task.overdue notification per project. With --once the scan runs a single
time; otherwise it keeps scanning on the configured interval until
interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			st, err := store.Open(cfg)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			composer := message.NewComposer(
				files.NewDirStore(cfg.Paths.AttachmentsDir),
				links.NewBuilder(cfg.Server.BaseURL),
				logger,
			)
			notifier := notify.New(
				st,
				st,
				composer,
				discord.NewClient(time.Duration(cfg.Discord.RequestTimeout)*time.Second),
				nil,
				logger,
			)
			scanner := overdue.NewScanner(st, notifier, logger)

			if once {
				if err := scanner.ScanOnce(cmd.Context()); err != nil {
					return fmt.Errorf("overdue scan: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Overdue scan complete")
				return nil
			}

			interval := time.Duration(cfg.Overdue.Interval) * time.Second
			runner := overdue.NewRunner(scanner, cfg.LockFilePath(), interval, logger)
			return runner.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Run a single scan and exit")
	return cmd
}
