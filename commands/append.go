package commands

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/healthsystem/health-bot-sheets/spreadsheet"
)

func newAppendCmd(c *command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "append <text>",
		Short: "Appends a single [timestamp, text] row to the worksheet",
		Long: `Appends a single [timestamp, text] row to the worksheet, exactly as the bot does
  for a free text message. Useful for checking the service account credentials and
  the spreadsheet sharing.`,
		Example: `  health-bot-sheets --debug append --credentials "credentials.json" \
                                   --spreadsheet "Health System" \
                                   --worksheet "Daily" \
                                   "slept 7 hours"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.config.validateSheets(); err != nil {
				return err
			}

			text := strings.TrimSpace(strings.Join(args, " "))
			sheet := spreadsheet.NewClient(c.config.sheets())

			if err := sheet.Append(cmd.Context(), text); err != nil {
				return fmt.Errorf("unable to append to %v:%v (%w)", c.config.Spreadsheet, c.config.Worksheet, err)
			}

			c.log.WithFields(logrus.Fields{
				"spreadsheet": c.config.Spreadsheet,
				"worksheet":   c.config.Worksheet,
			}).Info("appended row")

			return nil
		},
	}

	return cmd
}
