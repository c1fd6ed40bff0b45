package server

import (
	"net"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/relay-aggregator/jsonrpc"
	"github.com/0xPolygon/relay-aggregator/types"
)

func testConfig(t *testing.T, backend StorageType) *Config {
	t.Helper()

	return &Config{
		JSONRPC: &JSONRPC{
			JSONRPCAddr: &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0},
		},
		Telemetry: &Telemetry{},
		DataDir:   filepath.Join(t.TempDir(), "data"),
		Storage:   backend,
		Admin:     types.StringToAddress("hxadmin"),
		Relayers: []types.Address{
			types.StringToAddress("hxa"),
			types.StringToAddress("hxb"),
		},
		LogLevel: hclog.Off,
	}
}

func TestServer_Backends(t *testing.T) {
	t.Parallel()

	for _, backend := range []StorageType{LevelDBStorage, BoltDBStorage, MemoryStorage} {
		backend := backend

		t.Run(string(backend), func(t *testing.T) {
			t.Parallel()

			srv, err := NewServer(testConfig(t, backend))
			require.NoError(t, err)

			client, err := jsonrpc.NewRelayClient("http://" + srv.JSONRPCAddr())
			require.NoError(t, err)

			relayers, err := client.GetRelayers()
			require.NoError(t, err)
			assert.Len(t, relayers.Relayers, 2)
			assert.Equal(t, 1, relayers.Threshold)

			require.NoError(t, client.Close())
			require.NoError(t, srv.Close())
		})
	}
}

func TestServer_RestartKeepsState(t *testing.T) {
	t.Parallel()

	config := testConfig(t, LevelDBStorage)

	srv, err := NewServer(config)
	require.NoError(t, err)
	require.NoError(t, srv.Aggregator().SetAdmin(config.Admin, types.StringToAddress("hxnext")))
	require.NoError(t, srv.Close())

	// the configured admin is ignored once state exists
	srv, err = NewServer(config)
	require.NoError(t, err)

	defer srv.Close()

	admin, err := srv.Aggregator().GetAdmin()
	require.NoError(t, err)
	assert.Equal(t, types.StringToAddress("hxnext"), admin)
}

func TestServer_UnknownStorage(t *testing.T) {
	t.Parallel()

	_, err := NewServer(testConfig(t, StorageType("postgres")))
	assert.ErrorContains(t, err, "not found")
	assert.True(t, StorageSupported("boltdb"))
	assert.False(t, StorageSupported("postgres"))
}
