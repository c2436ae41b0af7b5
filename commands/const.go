package commands

const (
	DEFAULT_CREDENTIALS = "credentials.json"
	DEFAULT_SPREADSHEET = "Health System"
	DEFAULT_WORKSHEET   = "Daily"
	DEFAULT_PORT        = 10000
	DEFAULT_LOG_FORMAT  = "text"
)
