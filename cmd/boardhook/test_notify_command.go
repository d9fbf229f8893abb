package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"boardhook/internal/board"
	"boardhook/internal/discord"
	"boardhook/internal/events"
	"boardhook/internal/files"
	"boardhook/internal/links"
	"boardhook/internal/logging"
	"boardhook/internal/message"
	"boardhook/internal/store"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	var webhookFlag string

	cmd := &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			webhook := strings.TrimSpace(webhookFlag)
			if webhook == "" {
				st, err := store.Open(cfg)
				if err != nil {
					return fmt.Errorf("open store: %w", err)
				}
				defer st.Close()

				webhook, err = st.GetSetting(cmd.Context(), "discord_webhook_url", "")
				if err != nil {
					return fmt.Errorf("read webhook setting: %w", err)
				}
			}
			if strings.TrimSpace(webhook) == "" {
				return errors.New("no webhook URL configured (pass --webhook or set discord_webhook_url)")
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			composer := message.NewComposer(
				files.NewDirStore(cfg.Paths.AttachmentsDir),
				links.NewBuilder(cfg.Server.BaseURL),
				logger,
			)
			msg := composer.Compose(
				board.Project{ID: 1, Name: "boardhook"},
				events.TaskCreate,
				board.Payload{
					ProjectName: "boardhook",
					Task: &board.Task{
						ID:          1,
						ProjectID:   1,
						Title:       "Test notification",
						Description: "If you can read this, boardhook can reach your webhook.",
					},
				},
				nil,
			)

			client := discord.NewClient(time.Duration(cfg.Discord.RequestTimeout) * time.Second)
			if err := client.Send(cmd.Context(), webhook, msg); err != nil {
				return fmt.Errorf("send test notification: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}

	cmd.Flags().StringVar(&webhookFlag, "webhook", "", "Webhook URL to send to (defaults to the discord_webhook_url setting)")
	return cmd
}
