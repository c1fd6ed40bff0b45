package jsonrpc

import (
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/relay-aggregator/aggregator"
)

func TestSubscriptionManager_RoutesByType(t *testing.T) {
	t.Parallel()

	m := NewSubscriptionManager(hclog.NewNullLogger(), 4)
	defer m.Close()

	registered := &mockWsConn{msgCh: make(chan []byte, 4)}
	confirmed := &mockWsConn{msgCh: make(chan []byte, 4)}

	_, err := m.Subscribe(PacketRegisteredSubscription, registered)
	require.NoError(t, err)

	_, err = m.Subscribe(PacketConfirmedSubscription, confirmed)
	require.NoError(t, err)

	m.PacketRegistered(&aggregator.PacketRegisteredEvent{
		SrcNetwork:      "src",
		ContractAddress: "cx",
		SrcSn:           big.NewInt(3),
	})

	select {
	case msg := <-registered.msgCh:
		var n notification
		require.NoError(t, json.Unmarshal(msg, &n))
		assert.Equal(t, subscriptionMethod, n.Method)
	case <-time.After(2 * time.Second):
		t.Fatal("notification not received")
	}

	select {
	case <-confirmed.msgCh:
		t.Fatal("unexpected notification")
	case <-time.After(100 * time.Millisecond):
	}
}

type blockingWsConn struct {
	release chan struct{}
}

func (b *blockingWsConn) WriteMessage(int, []byte) error {
	<-b.release

	return nil
}

func TestSubscriptionManager_SlowSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()

	m := NewSubscriptionManager(hclog.NewNullLogger(), 1)

	conn := &blockingWsConn{release: make(chan struct{})}
	defer func() {
		close(conn.release)
		m.Close()
	}()

	_, err := m.Subscribe(PacketConfirmedSubscription, conn)
	require.NoError(t, err)

	done := make(chan struct{})

	go func() {
		defer close(done)

		for i := 0; i < 100; i++ {
			m.PacketConfirmed(&aggregator.PacketConfirmedEvent{SrcSn: big.NewInt(int64(i))})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notifier blocked on a slow subscriber")
	}
}

func TestSubscriptionManager_RemoveByWs(t *testing.T) {
	t.Parallel()

	m := NewSubscriptionManager(hclog.NewNullLogger(), 0)
	defer m.Close()

	connA := &mockWsConn{msgCh: make(chan []byte, 1)}
	connB := &mockWsConn{msgCh: make(chan []byte, 1)}

	idA1, err := m.Subscribe(PacketRegisteredSubscription, connA)
	require.NoError(t, err)

	idA2, err := m.Subscribe(PacketConfirmedSubscription, connA)
	require.NoError(t, err)

	idB, err := m.Subscribe(PacketConfirmedSubscription, connB)
	require.NoError(t, err)

	m.RemoveByWs(connA)

	assert.False(t, m.Exists(idA1))
	assert.False(t, m.Exists(idA2))
	assert.True(t, m.Exists(idB))
}

func TestSubscriptionManager_Closed(t *testing.T) {
	t.Parallel()

	m := NewSubscriptionManager(hclog.NewNullLogger(), 0)
	m.Close()

	_, err := m.Subscribe(PacketConfirmedSubscription, &mockWsConn{})
	assert.ErrorIs(t, err, ErrSubscriptionManagerClosed)
}

func TestParseSubscriptionType(t *testing.T) {
	t.Parallel()

	for _, kind := range []subscriptionType{PacketRegisteredSubscription, PacketConfirmedSubscription} {
		parsed, err := parseSubscriptionType(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := parseSubscriptionType("logs")
	assert.ErrorIs(t, err, ErrUnknownSubscriptionType)
}
