package cmd

import (
	cli "github.com/urfave/cli/v3"
)

// ExecutorFlags are the flags shared by every binary that runs automations.
func ExecutorFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "database-url",
			Usage:    "Database connection URL for persistence (file://... or postgres://...)",
			Required: true,
			Sources:  cli.EnvVars("DATABASE_URL"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "Log level (debug, info, warn, error)",
			Value:   "info",
			Sources: cli.EnvVars("LOG_LEVEL"),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "Log format (text, json)",
			Value:   "text",
			Sources: cli.EnvVars("LOG_FORMAT"),
		},
		&cli.StringFlag{
			Name:    "sms-provider",
			Usage:   "Outbound SMS provider (function, kafka)",
			Value:   "function",
			Sources: cli.EnvVars("SMS_PROVIDER"),
		},
		&cli.StringFlag{
			Name:    "sms-function-url",
			Usage:   "URL of the SMS sending function",
			Sources: cli.EnvVars("SMS_FUNCTION_URL"),
		},
		&cli.StringFlag{
			Name:    "service-role-key",
			Usage:   "Bearer key sent to the SMS function",
			Sources: cli.EnvVars("SERVICE_ROLE_KEY"),
		},
		&cli.StringFlag{
			Name:    "ai-api-key",
			Usage:   "API key of the chat-completion provider",
			Sources: cli.EnvVars("OPENAI_API_KEY"),
		},
		&cli.StringFlag{
			Name:    "ai-base-url",
			Usage:   "Base URL of the OpenAI-compatible chat-completion API",
			Sources: cli.EnvVars("OPENAI_BASE_URL"),
		},
		&cli.StringFlag{
			Name:    "ai-model",
			Usage:   "Chat-completion model",
			Value:   "gpt-4o-mini",
			Sources: cli.EnvVars("OPENAI_MODEL"),
		},
		&cli.StringFlag{
			Name:    "event-bus",
			Usage:   "Event bus for run events (none, gochannel, kafka)",
			Value:   "none",
			Sources: cli.EnvVars("EVENT_BUS"),
		},
		&cli.StringFlag{
			Name:    "kafka-brokers",
			Usage:   "Comma separated Kafka brokers",
			Sources: cli.EnvVars("KAFKA_BROKERS"),
		},
		&cli.BoolFlag{
			Name:    "tracing",
			Usage:   "Export traces over OTLP/HTTP",
			Sources: cli.EnvVars("OTEL_ENABLED"),
		},
	}
}
