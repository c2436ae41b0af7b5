package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/healthsystem/health-bot-sheets/health"
)

func newServeCmd(c *command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Runs the bot alongside an HTTP health check for hosted deployments",
		Long: `Runs the bot alongside an HTTP health check listening on --port (or PORT).

  GET / returns 200 'ok' so that a hosting platform port scan sees a listening process.
  The health check and the bot share nothing and run independently.`,
		Example: `  PORT=10000 TELEGRAM_TOKEN=123456:ABC-DEF health-bot-sheets serve --credentials "/etc/secrets/credentials.json"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.config.validateBot(); err != nil {
				return err
			}

			if c.config.Port <= 0 || c.config.Port > 65535 {
				return fmt.Errorf("invalid port %v", c.config.Port)
			}

			b, err := c.bot()
			if err != nil {
				return err
			}

			srv := health.NewServer(fmt.Sprintf(":%v", c.config.Port), c.log)

			return serve(cmd.Context(), srv.Run, b.Run)
		},
	}

	cmd.Flags().String("telegram-token", "", "Telegram bot token (or TELEGRAM_TOKEN)")
	cmd.Flags().Int("port", DEFAULT_PORT, "Health check port (or PORT)")

	return cmd
}

// serve runs the tasks concurrently until ctx is cancelled or one of them fails,
// in which case the others are cancelled and the first error is returned.
func serve(ctx context.Context, tasks ...func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			return task(ctx)
		})
	}

	return g.Wait()
}
