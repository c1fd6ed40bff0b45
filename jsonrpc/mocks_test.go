package jsonrpc

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/relay-aggregator/aggregator"
	"github.com/0xPolygon/relay-aggregator/aggregator/storage/memory"
	"github.com/0xPolygon/relay-aggregator/types"
)

var (
	testAdmin   = types.StringToAddress("hxadmin")
	testRelayA  = types.StringToAddress("hxa")
	testRelayB  = types.StringToAddress("hxb")
	testRelayC  = types.StringToAddress("hxc")
	testOutside = types.StringToAddress("hxoutside")
)

type mockWsConn struct {
	msgCh chan []byte
}

func (m *mockWsConn) WriteMessage(messageType int, b []byte) error {
	m.msgCh <- b

	return nil
}

func newTestAggregator(t testing.TB, notifier aggregator.Notifier) *aggregator.Aggregator {
	t.Helper()

	store, err := memory.NewMemoryStorage(hclog.NewNullLogger(), 0)
	require.NoError(t, err)

	a, err := aggregator.NewAggregator(hclog.NewNullLogger(), store, notifier, nil)
	require.NoError(t, err)

	_, err = a.Initialize(testAdmin, []types.Address{testRelayA, testRelayB, testRelayC})
	require.NoError(t, err)

	return a
}

func newTestDispatcher(t testing.TB, batchLimit uint64) (*Dispatcher, *SubscriptionManager) {
	t.Helper()

	subscriptions := NewSubscriptionManager(hclog.NewNullLogger(), 0)
	t.Cleanup(subscriptions.Close)

	d, err := newDispatcher(
		hclog.NewNullLogger(),
		newTestAggregator(t, subscriptions),
		subscriptions,
		&dispatcherParams{jsonRPCBatchLengthLimit: batchLimit},
	)
	require.NoError(t, err)

	return d, subscriptions
}
