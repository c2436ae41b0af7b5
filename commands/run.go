package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/healthsystem/health-bot-sheets/bot"
	"github.com/healthsystem/health-bot-sheets/spreadsheet"
)

func newRunCmd(c *command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Long polls Telegram for messages and appends them to the worksheet",
		Example: `  health-bot-sheets run --telegram-token "123456:ABC-DEF" --credentials "credentials.json"

  TELEGRAM_TOKEN=123456:ABC-DEF health-bot-sheets --debug run --spreadsheet "Health System" --worksheet "Daily"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.config.validateBot(); err != nil {
				return err
			}

			b, err := c.bot()
			if err != nil {
				return err
			}

			return b.Run(cmd.Context())
		},
	}

	cmd.Flags().String("telegram-token", "", "Telegram bot token (or TELEGRAM_TOKEN)")

	return cmd
}

func (c *command) bot() (*bot.Bot, error) {
	sheet := spreadsheet.NewClient(c.config.sheets())
	handler := bot.NewHandler(sheet, c.log)

	c.log.WithFields(logrus.Fields{
		"spreadsheet": c.config.Spreadsheet,
		"worksheet":   c.config.Worksheet,
	}).Debug("configured worksheet")

	b, err := bot.New(bot.Settings{Token: c.config.Token}, handler, c.log)
	if err != nil {
		return nil, fmt.Errorf("Telegram bot error (%w)", err)
	}

	return b, nil
}
