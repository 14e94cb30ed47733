package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	return &Config{
		ServerBaseURL:       "http://127.0.0.1:8080/api",
		OrderID:             "1",
		StoragePath:         "storefront.db",
		RequestTimeout:      10 * time.Second,
		OnlineCheckInterval: 3 * time.Second,
		LogFormat:           "text",
		LogLevel:            "info",
	}
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()
	assert.Empty(t, cmp.Diff(defaults(), &c))
}

func TestLoadConfig_UsesDefaultsWithoutArgs(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoad_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"server_base_url":       "http://json.example/api",
		"order_id":              "json-order",
		"online_check_interval": "7s",
	})

	cfg := load([]string{"-c", path, "-o", "flag-order", "-l", "debug"})

	want := defaults()
	want.ServerBaseURL = "http://json.example/api"
	want.OrderID = "flag-order"
	want.OnlineCheckInterval = 7 * time.Second
	want.LogLevel = "debug"
	assert.Empty(t, cmp.Diff(want, cfg))
}
