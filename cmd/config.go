package cmd

import "time"

// Config carries everything the process needs from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// JWTSecret signs and verifies session tokens (HS256).
	JWTSecret string

	// RoutingBaseURL is the OSRM-compatible road distance provider. Empty
	// means candidate ranking falls back to great-circle distance.
	RoutingBaseURL string

	// NotifyWebhookURL receives assignment notifications. Empty disables
	// notification delivery.
	NotifyWebhookURL string

	// StaleLocationHorizon is how old a location fix may get before the
	// background sweep reports it.
	StaleLocationHorizon time.Duration
}
