package memory

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/relay-aggregator/aggregator/storage"
)

func TestStorage(t *testing.T) {
	f := func(t *testing.T) (storage.Storage, func()) {
		t.Helper()

		s, err := NewMemoryStorage(hclog.NewNullLogger(), 0)
		require.NoError(t, err)

		return s, func() {}
	}
	storage.TestStorage(t, f)
}
