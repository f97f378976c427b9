package config

import (
	"fmt"
	"time"
)

// ClientRemote holds network settings used by the client document store
// transport.
type ClientRemote struct {
	// BaseURL is the document store endpoint used by the client.
	BaseURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientSpeech holds the speech-assessment endpoint settings used by the
// practice commands.
type ClientSpeech struct {
	// BaseURL is the assessment service endpoint.
	BaseURL string
	// APIKey authenticates assessment requests.
	APIKey string
	// RequestTimeout bounds a single assessment round-trip.
	RequestTimeout time.Duration
}

// ClientLocal holds the local key/value store settings.
type ClientLocal struct {
	// Path is the local store location on disk.
	Path string
	// Backend selects the store implementation: "file" or "sqlite".
	Backend string
}

// ClientSync holds retry/backoff and refresh settings for the sync engine.
type ClientSync struct {
	// MaxRetries is the number of additional attempts after a failure.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the exponential backoff delay.
	MaxDelay time.Duration
	// RefreshInterval defines how often the background refresh job runs.
	RefreshInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Remote contains document store transport settings.
	Remote ClientRemote
	// Speech contains assessment service settings.
	Speech ClientSpeech
	// Local contains local store settings.
	Local ClientLocal
	// Sync contains sync engine settings.
	Sync ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, applies client defaults, and validates the
// resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Remote: ClientRemote{
			BaseURL:        cfg.Remote.BaseURL,
			RequestTimeout: cfg.Remote.RequestTimeout,
		},
		Speech: ClientSpeech{
			BaseURL:        cfg.Speech.BaseURL,
			APIKey:         cfg.Speech.APIKey,
			RequestTimeout: cfg.Speech.RequestTimeout,
		},
		Local: ClientLocal{
			Path:    cfg.Storage.Local.Path,
			Backend: cfg.Storage.Local.Backend,
		},
		Sync: ClientSync{
			MaxRetries:      cfg.Sync.MaxRetries,
			BaseDelay:       cfg.Sync.BaseDelay,
			MaxDelay:        cfg.Sync.MaxDelay,
			RefreshInterval: cfg.Sync.RefreshInterval,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Remote.BaseURL == "" {
		cfg.Remote.BaseURL = "http://localhost:8080"
	}
	if cfg.Remote.RequestTimeout <= 0 {
		cfg.Remote.RequestTimeout = 15 * time.Second
	}
	if cfg.Speech.RequestTimeout <= 0 {
		cfg.Speech.RequestTimeout = 60 * time.Second
	}
	if cfg.Local.Backend == "" {
		cfg.Local.Backend = "file"
	}
	if cfg.Local.Path == "" {
		cfg.Local.Path = "sayright.json"
	}
	if cfg.Sync.RefreshInterval <= 0 {
		cfg.Sync.RefreshInterval = 5 * time.Minute
	}
}
