package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a devserver listen address in format [host]:[port]
//	-r remote document store base URL
//	-speech-url speech assessment service base URL
//	-speech-key speech assessment API key
//	-d database DSN (devserver)
//	-l local store path (client)
//	-local-backend local store backend ("file" or "sqlite")
//	-c/-config json file path with configs
//	-token-sign-key token signing key (devserver)
//	-token-issuer token issuer name (devserver)
//	-token-duration token duration (e.g., "24h")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-refresh-interval background refresh interval (e.g., "5m")
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var remoteBaseURL string
	var speechBaseURL string
	var speechAPIKey string
	var databaseDSN string
	var localPath string
	var localBackend string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var refreshInterval time.Duration

	flag.StringVar(&serverAddress, "a", "", "Devserver listen address host:port")
	flag.StringVar(&remoteBaseURL, "r", "", "Remote document store base URL")
	flag.StringVar(&speechBaseURL, "speech-url", "", "Speech assessment base URL")
	flag.StringVar(&speechAPIKey, "speech-key", "", "Speech assessment API key")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&localPath, "l", "", "Local store path")
	flag.StringVar(&localBackend, "local-backend", "", "Local store backend (file or sqlite)")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 24h)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.DurationVar(&refreshInterval, "refresh-interval", 0, "Background refresh interval (e.g., 5m)")

	flag.Parse()

	return &StructuredConfig{
		Remote: Remote{
			BaseURL:        remoteBaseURL,
			RequestTimeout: requestTimeout,
		},
		Speech: Speech{
			BaseURL: speechBaseURL,
			APIKey:  speechAPIKey,
		},
		Storage: Storage{
			Local: Local{
				Path:    localPath,
				Backend: localBackend,
			},
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Sync: Sync{
			RefreshInterval: refreshInterval,
		},
		Auth: Auth{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
