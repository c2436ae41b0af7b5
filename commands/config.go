package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/healthsystem/health-bot-sheets/spreadsheet"
)

// Config is the merged result of command line flags, environment variables, an
// optional YAML configuration file and the defaults, in that order of precedence.
type Config struct {
	Token       string `mapstructure:"telegram-token"`
	Port        int    `mapstructure:"port"`
	Credentials string `mapstructure:"credentials"`
	Spreadsheet string `mapstructure:"spreadsheet"`
	Worksheet   string `mapstructure:"worksheet"`
	Debug       bool   `mapstructure:"debug"`
	LogFormat   string `mapstructure:"log-format"`
}

var env = map[string]string{
	"telegram-token": "TELEGRAM_TOKEN",
	"port":           "PORT",
	"credentials":    "GOOGLE_CREDENTIALS",
	"spreadsheet":    "SPREADSHEET_NAME",
	"worksheet":      "SHEET_NAME",
	"debug":          "DEBUG",
	"log-format":     "LOG_FORMAT",
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetConfigType("yaml")
	v.SetDefault("port", DEFAULT_PORT)
	v.SetDefault("credentials", DEFAULT_CREDENTIALS)
	v.SetDefault("spreadsheet", DEFAULT_SPREADSHEET)
	v.SetDefault("worksheet", DEFAULT_WORKSHEET)
	v.SetDefault("debug", false)
	v.SetDefault("log-format", DEFAULT_LOG_FORMAT)

	for key, variable := range env {
		v.BindEnv(key, variable)
	}

	return v
}

// load binds the flags of the executing command and reads the configuration file.
// An explicit --config file must exist, the default one is optional.
func load(v *viper.Viper, flags *pflag.FlagSet) (*Config, error) {
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	file := strings.TrimSpace(v.GetString("config"))
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %v (%w)", file, err)
		}
	} else if _, err := os.Stat(DEFAULT_CONFIG); err == nil {
		v.SetConfigFile(DEFAULT_CONFIG)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %v (%w)", DEFAULT_CONFIG, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("error unmarshaling config (%w)", err)
	}

	return &conf, nil
}

func (c *Config) validateSheets() error {
	if strings.TrimSpace(c.Credentials) == "" {
		return fmt.Errorf("--credentials is a required option")
	}

	if strings.TrimSpace(c.Spreadsheet) == "" {
		return fmt.Errorf("--spreadsheet is a required option")
	}

	if strings.TrimSpace(c.Worksheet) == "" {
		return fmt.Errorf("--worksheet is a required option")
	}

	return nil
}

func (c *Config) validateBot() error {
	if strings.TrimSpace(c.Token) == "" {
		return fmt.Errorf("Telegram bot token is not set (--telegram-token or TELEGRAM_TOKEN)")
	}

	return c.validateSheets()
}

func (c *Config) sheets() spreadsheet.Config {
	return spreadsheet.Config{
		Credentials: c.Credentials,
		Spreadsheet: c.Spreadsheet,
		Worksheet:   c.Worksheet,
	}
}
