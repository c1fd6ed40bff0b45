package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/relay-aggregator/server"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func TestReadConfigFile(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json",
			file: "config.json",
			content: `{
				"data_dir": "/tmp/relay",
				"storage": "boltdb",
				"admin": "hx0001",
				"relayers": ["hx0001", "0x0002"],
				"confirm_once": true,
				"packet_cache_size": 16,
				"telemetry": {"prometheus_addr": "127.0.0.1:9090"}
			}`,
		},
		{
			name: "yaml",
			file: "config.yaml",
			content: `
data_dir: /tmp/relay
storage: boltdb
admin: hx0001
relayers:
  - hx0001
  - "0x0002"
confirm_once: true
packet_cache_size: 16
telemetry:
  prometheus_addr: 127.0.0.1:9090
`,
		},
		{
			name: "hcl",
			file: "config.hcl",
			content: `
data_dir = "/tmp/relay"
storage = "boltdb"
admin = "hx0001"
relayers = ["hx0001", "0x0002"]
confirm_once = true
packet_cache_size = 16
`,
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			config, err := ReadConfigFile(writeConfigFile(t, c.file, c.content))
			require.NoError(t, err)

			assert.Equal(t, "/tmp/relay", config.DataDir)
			assert.Equal(t, string(server.BoltDBStorage), config.Storage)
			assert.Equal(t, "hx0001", config.Admin)
			assert.Equal(t, []string{"hx0001", "0x0002"}, config.Relayers)
			assert.True(t, config.ConfirmOnce)
			assert.Equal(t, 16, config.PacketCacheSize)

			// keys missing from the file keep their defaults
			assert.Equal(t, DefaultJSONRPCBatchRequestLimit, config.JSONRPCBatchRequestLimit)
			assert.Equal(t, DefaultConfig().JSONRPCAddr, config.JSONRPCAddr)
			require.NotNil(t, config.Telemetry)

			require.NoError(t, config.Validate())
		})
	}
}

func TestReadConfigFile_Errors(t *testing.T) {
	t.Parallel()

	_, err := ReadConfigFile(writeConfigFile(t, "config.toml", "storage = 'memory'"))
	assert.ErrorContains(t, err, "neither hcl, json, yaml nor yml")

	_, err = ReadConfigFile(writeConfigFile(t, "config.json", "{"))
	assert.Error(t, err)

	_, err = ReadConfigFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	t.Run("default config needs an admin", func(t *testing.T) {
		t.Parallel()

		assert.ErrorIs(t, DefaultConfig().Validate(), errEmptyAdmin)

		config := DefaultConfig()
		config.Admin = "hx0001"

		assert.NoError(t, config.Validate())
	})

	t.Run("every problem is reported", func(t *testing.T) {
		t.Parallel()

		config := DefaultConfig()
		config.Storage = "rocksdb"
		config.PacketCacheSize = -1
		config.Admin = " "
		config.Relayers = []string{"a", " ", "b", "a"}

		err := config.Validate()
		require.Error(t, err)

		merr, ok := err.(*multierror.Error) //nolint:errorlint
		require.True(t, ok)
		assert.Len(t, merr.Errors, 5)

		assert.ErrorIs(t, err, errEmptyAdmin)
		assert.ErrorIs(t, err, errEmptyRelayer)
		assert.ErrorIs(t, err, errDuplicateRelayer)
		assert.ErrorIs(t, err, errNegativeCacheSize)
		assert.ErrorContains(t, err, "rocksdb")
	})

	t.Run("empty relayer set is accepted", func(t *testing.T) {
		t.Parallel()

		config := DefaultConfig()
		config.Admin = "hx0001"
		config.Relayers = nil

		assert.NoError(t, config.Validate())
	})
}
