package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanDung-dev/QNetX-Engine/network"
	"github.com/VanDung-dev/QNetX-Engine/qnetx"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "node-1", cfg.Node.ID)
	assert.Equal(t, network.KindZMQ, cfg.Node.Transport.Kind)
	assert.Equal(t, 4, cfg.Routing.KPaths)
	assert.Equal(t, 30*time.Second, cfg.Mesh.ZeroPropagationInterval)
	assert.Nil(t, cfg.Mesh.AnomalyThreshold)
}

func TestLoadFromYAML(t *testing.T) {
	yamlConfig := []byte(`
node:
  id: alpha
  transport:
    kind: nng
    port: 6001
  peers:
    - id: beta
      address: tcp://127.0.0.1:6002
routing:
  k_paths: 2
  enable_teleport: true
  edges:
    - {from: alpha, to: beta}
    - {from: beta, to: gamma}
mesh:
  dimensions: [A, B]
  anomaly_threshold: 0.5
  handshake_timeout: 2s
`)

	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBuffer(yamlConfig)))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "alpha", cfg.Node.ID)
	assert.Equal(t, "127.0.0.1", cfg.Node.Transport.Host, "default kept")
	assert.Equal(t, []PeerConfig{{ID: "beta", Address: "tcp://127.0.0.1:6002"}}, cfg.Node.Peers)
	assert.Len(t, cfg.Routing.Edges, 2)
	require.NotNil(t, cfg.Mesh.AnomalyThreshold)
	assert.Equal(t, 0.5, *cfg.Mesh.AnomalyThreshold)

	netCfg := cfg.ToNetwork()
	assert.Equal(t, network.KindNNG, netCfg.Kind)
	assert.Equal(t, "tcp://127.0.0.1:6001", netCfg.Address())

	routing := cfg.ToRouting()
	assert.Equal(t, 2, routing.KPaths)
	assert.True(t, routing.EnableTeleport)

	mesh := cfg.ToMesh()
	assert.Equal(t, []qnetx.Dimension{"A", "B"}, mesh.Dimensions)
	assert.Equal(t, 2*time.Second, mesh.HandshakeTimeout)
	assert.Equal(t, 8, mesh.HandshakeWorkers)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("QNETX_NODE_ID", "from-env")
	t.Setenv("QNETX_ROUTING_K_PATHS", "7")

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Node.ID)
	assert.Equal(t, 7, cfg.Routing.KPaths)
}

func TestConfigValidation(t *testing.T) {
	negative := -1.0

	testCases := []struct {
		name     string
		mutate   func(c *Config)
		errorMsg string
	}{
		{
			name:     "missing node id",
			mutate:   func(c *Config) { c.Node.ID = "" },
			errorMsg: "Node.ID",
		},
		{
			name:     "unknown transport",
			mutate:   func(c *Config) { c.Node.Transport.Kind = "udp" },
			errorMsg: "Node.Transport.Kind",
		},
		{
			name:     "zero k paths",
			mutate:   func(c *Config) { c.Routing.KPaths = 0 },
			errorMsg: "Routing.KPaths",
		},
		{
			name:     "edge without endpoint",
			mutate:   func(c *Config) { c.Routing.Edges = []EdgeConfig{{From: "A"}} },
			errorMsg: "Routing.Edges[0].To",
		},
		{
			name:     "empty dimension",
			mutate:   func(c *Config) { c.Mesh.Dimensions = []string{"A", ""} },
			errorMsg: "Mesh.Dimensions[1]",
		},
		{
			name:     "dimension with separator",
			mutate:   func(c *Config) { c.Mesh.Dimensions = []string{"A", "B,C"} },
			errorMsg: "Mesh.Dimensions[1]: failed 'dimension'",
		},
		{
			name:     "dimension with newline",
			mutate:   func(c *Config) { c.Mesh.Dimensions = []string{"A\n", "B"} },
			errorMsg: "Mesh.Dimensions[0]: failed 'dimension'",
		},
		{
			name:     "duplicate dimension",
			mutate:   func(c *Config) { c.Mesh.Dimensions = []string{"A", "A"} },
			errorMsg: "duplicate dimension",
		},
		{
			name:     "negative threshold",
			mutate:   func(c *Config) { c.Mesh.AnomalyThreshold = &negative },
			errorMsg: "Mesh.AnomalyThreshold",
		},
		{
			name:     "metrics without address",
			mutate:   func(c *Config) { c.Metrics.Enabled, c.Metrics.Address = true, "" },
			errorMsg: "Metrics.Address",
		},
		{
			name:     "bad log level",
			mutate:   func(c *Config) { c.Logger.Level = "verbose" },
			errorMsg: "Logger.Level",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorMsg)
		})
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qnetx.yaml")

	cfg := Default()
	cfg.Node.ID = "written"
	cfg.Mesh.Dimensions = []string{"A", "B"}
	require.NoError(t, WriteFile(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "handshake_timeout: 10s")

	v, err := NewViper(path)
	require.NoError(t, err)
	loaded, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "written", loaded.Node.ID)
	assert.Equal(t, cfg.Node.Transport, loaded.Node.Transport)
	assert.Equal(t, cfg.Mesh.Dimensions, loaded.Mesh.Dimensions)
	assert.Equal(t, cfg.Mesh.HandshakeTimeout, loaded.Mesh.HandshakeTimeout)
	assert.Equal(t, cfg.Metrics, loaded.Metrics)
	assert.Equal(t, cfg.Logger, loaded.Logger)
}

func TestNewViperMissingFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
