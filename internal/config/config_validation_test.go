package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validClientConfig() *ClientConfig {
	return &ClientConfig{
		Remote: ClientRemote{
			BaseURL:        "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Local: ClientLocal{
			Path:    "sayright.json",
			Backend: "file",
		},
		Sync: ClientSync{
			MaxRetries: 3,
			BaseDelay:  time.Second,
			MaxDelay:   10 * time.Second,
		},
	}
}

func TestClientConfigValidate_Valid(t *testing.T) {
	require.NoError(t, validClientConfig().validate())
}

func TestClientConfigValidate_MissingRemote(t *testing.T) {
	cfg := validClientConfig()
	cfg.Remote.BaseURL = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidRemoteConfigs)
}

func TestClientConfigValidate_ZeroTimeout(t *testing.T) {
	cfg := validClientConfig()
	cfg.Remote.RequestTimeout = 0
	assert.ErrorIs(t, cfg.validate(), ErrInvalidRemoteConfigs)
}

func TestClientConfigValidate_EmptyLocalPath(t *testing.T) {
	cfg := validClientConfig()
	cfg.Local.Path = ""
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestClientConfigValidate_UnknownBackend(t *testing.T) {
	cfg := validClientConfig()
	cfg.Local.Backend = "redis"
	assert.ErrorIs(t, cfg.validate(), ErrInvalidStorageConfigs)
}

func TestClientConfigValidate_NegativeRetries(t *testing.T) {
	cfg := validClientConfig()
	cfg.Sync.MaxRetries = -1
	assert.ErrorIs(t, cfg.validate(), ErrInvalidSyncConfigs)
}
