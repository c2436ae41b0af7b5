package commands

const DEFAULT_CONFIG = `C:\ProgramData\health-bot\health-bot-sheets.yaml`
