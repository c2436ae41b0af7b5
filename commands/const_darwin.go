package commands

const (
	_etc = "/usr/local/etc/com.github.healthsystem/health-bot"

	DEFAULT_CONFIG = _etc + "/health-bot-sheets.yaml"
)
