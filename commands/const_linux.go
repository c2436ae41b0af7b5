package commands

const (
	_etc = "/usr/local/etc/health-bot"

	DEFAULT_CONFIG = _etc + "/health-bot-sheets.yaml"
)
