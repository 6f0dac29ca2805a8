package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rtnet.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfig(t, `
node:
  address: "fe80::1"
  mac: "02:00:00:00:00:01"
link:
  device: "eth0"
  buffer_size_mb: 8
routes:
  - destination: "2001:db8::"
    prefix_len: 64
    next_hop: "fe80::ff"
    metric: 10
maintenance:
  interval_ms: 500
metrics:
  enabled: true
  listen: "127.0.0.1:9090"
log:
  level: "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "fe80::1", cfg.Node.Address)
	assert.Equal(t, "02:00:00:00:00:01", cfg.Node.MAC)
	assert.Equal(t, "eth0", cfg.Link.Device)
	assert.Equal(t, 8, cfg.Link.BufferSizeMB)
	require.Len(t, cfg.Routes, 1)
	assert.Equal(t, uint8(64), cfg.Routes[0].PrefixLen)
	assert.Equal(t, uint16(10), cfg.Routes[0].Metric)
	assert.Equal(t, 500, cfg.Maintenance.IntervalMs)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Maintenance.IntervalMs)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"bad node address", "node:\n  address: \"not-an-ip\"\n"},
		{"bad mac", "node:\n  mac: \"zz:zz\"\n"},
		{"bad route destination", "routes:\n  - destination: \"nope\"\n    prefix_len: 64\n"},
		{"prefix too long", "routes:\n  - destination: \"2001:db8::\"\n    prefix_len: 129\n"},
		{"zero maintenance interval", "maintenance:\n  interval_ms: 0\n"},
		{"metrics without listen", "metrics:\n  enabled: true\n  listen: \"\"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/rtnet.yml")
	assert.Error(t, err)
}
