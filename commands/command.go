package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const APP = "health-bot-sheets"

var VERSION = "v0.1.0"

// command holds the state shared by all the subcommands of a single invocation.
type command struct {
	viper  *viper.Viper
	config *Config
	log    *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	c := &command{
		viper: newViper(),
	}

	root := &cobra.Command{
		Use:   APP,
		Short: "Relays Telegram messages to a Google Sheets worksheet",
		Long: `Relays free text messages sent to a Telegram bot into rows of a Google Sheets worksheet.

  Each message that is not a button press is appended to the worksheet as a
  [timestamp, text] row. The bot also answers /start and /buttons.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := load(c.viper, cmd.Flags())
			if err != nil {
				return err
			}

			c.config = conf
			c.log = newLogger(conf.Debug, conf.LogFormat)

			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "YAML configuration file. Defaults to "+DEFAULT_CONFIG+" if it exists")
	flags.Bool("debug", false, "Enables debug logging")
	flags.String("log-format", DEFAULT_LOG_FORMAT, "Log format (text or json)")
	flags.String("credentials", DEFAULT_CREDENTIALS, "Path for the Google service account 'credentials.json' file")
	flags.String("spreadsheet", DEFAULT_SPREADSHEET, "Spreadsheet name")
	flags.String("worksheet", DEFAULT_WORKSHEET, "Worksheet name")

	root.AddCommand(
		newRunCmd(c),
		newServeCmd(c),
		newAppendCmd(c),
		newVersionCmd(),
	)

	return root
}
