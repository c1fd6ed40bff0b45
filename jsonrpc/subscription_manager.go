package jsonrpc

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/armon/go-metrics"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/relay-aggregator/aggregator"
	"github.com/0xPolygon/relay-aggregator/helper/hex"
)

type subscriptionType byte

const (
	PacketRegisteredSubscription subscriptionType = iota
	PacketConfirmedSubscription
)

const (
	subscriptionMethod = "relay_subscription"

	// defaultSubscriptionBuffer is the number of pending notifications per subscription
	defaultSubscriptionBuffer = 64
)

var (
	ErrSubscriptionManagerClosed = errors.New("subscription manager is closed")
	ErrUnknownSubscriptionType   = errors.New("unknown subscription type")
)

func parseSubscriptionType(name string) (subscriptionType, error) {
	switch name {
	case "packetRegistered":
		return PacketRegisteredSubscription, nil
	case "packetConfirmed":
		return PacketConfirmedSubscription, nil
	default:
		return 0, ErrUnknownSubscriptionType
	}
}

func (s subscriptionType) String() string {
	switch s {
	case PacketRegisteredSubscription:
		return "packetRegistered"
	case PacketConfirmedSubscription:
		return "packetConfirmed"
	default:
		return "unknown"
	}
}

type subscription struct {
	id    string
	kind  subscriptionType
	ws    wsConn
	msgCh chan []byte
	done  chan struct{}
}

func (s *subscription) run(logger hclog.Logger) {
	for {
		select {
		case msg := <-s.msgCh:
			if err := s.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Debug("failed to write notification", "id", s.id, "err", err)
			}
		case <-s.done:
			return
		}
	}
}

// SubscriptionManager pushes aggregator events to websocket subscribers.
// It implements aggregator.Notifier and never blocks the caller: a
// subscriber that falls behind loses notifications.
type SubscriptionManager struct {
	logger hclog.Logger

	lock          sync.RWMutex
	subscriptions map[string]*subscription
	closed        bool

	bufferSize int
}

var _ aggregator.Notifier = (*SubscriptionManager)(nil)

func NewSubscriptionManager(logger hclog.Logger, bufferSize int) *SubscriptionManager {
	if bufferSize <= 0 {
		bufferSize = defaultSubscriptionBuffer
	}

	return &SubscriptionManager{
		logger:        logger.Named("subscriptions"),
		subscriptions: map[string]*subscription{},
		bufferSize:    bufferSize,
	}
}

// Subscribe registers ws for the events of the given kind and returns the subscription id
func (m *SubscriptionManager) Subscribe(kind subscriptionType, ws wsConn) (string, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.closed {
		return "", ErrSubscriptionManagerClosed
	}

	uuidObj := uuid.New()

	sub := &subscription{
		id:    hex.EncodeToHex(uuidObj[:]),
		kind:  kind,
		ws:    ws,
		msgCh: make(chan []byte, m.bufferSize),
		done:  make(chan struct{}),
	}

	m.subscriptions[sub.id] = sub

	go sub.run(m.logger)

	m.logger.Debug("subscription added", "id", sub.id, "type", kind)
	metrics.SetGauge([]string{jsonRPCMetric, "subscriptions"}, float32(len(m.subscriptions)))

	return sub.id, nil
}

// Uninstall removes the subscription and reports whether it existed
func (m *SubscriptionManager) Uninstall(id string) bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	return m.removeLocked(id)
}

// RemoveByWs removes every subscription bound to ws
func (m *SubscriptionManager) RemoveByWs(ws wsConn) {
	m.lock.Lock()
	defer m.lock.Unlock()

	for id, sub := range m.subscriptions {
		if sub.ws == ws {
			m.removeLocked(id)
		}
	}
}

// Exists reports whether the subscription is installed
func (m *SubscriptionManager) Exists(id string) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()

	_, ok := m.subscriptions[id]

	return ok
}

// Close stops every subscription writer
func (m *SubscriptionManager) Close() {
	m.lock.Lock()
	defer m.lock.Unlock()

	for id := range m.subscriptions {
		m.removeLocked(id)
	}

	m.closed = true
}

func (m *SubscriptionManager) removeLocked(id string) bool {
	sub, ok := m.subscriptions[id]
	if !ok {
		return false
	}

	close(sub.done)
	delete(m.subscriptions, id)

	metrics.SetGauge([]string{jsonRPCMetric, "subscriptions"}, float32(len(m.subscriptions)))

	return true
}

func (m *SubscriptionManager) PacketRegistered(evnt *aggregator.PacketRegisteredEvent) {
	m.broadcast(PacketRegisteredSubscription, toPacketRegistered(evnt))
}

func (m *SubscriptionManager) PacketConfirmed(evnt *aggregator.PacketConfirmedEvent) {
	m.broadcast(PacketConfirmedSubscription, toPacketConfirmed(evnt))
}

func (m *SubscriptionManager) broadcast(kind subscriptionType, result interface{}) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	for _, sub := range m.subscriptions {
		if sub.kind != kind {
			continue
		}

		msg, err := json.Marshal(&notification{
			JSONRPC: "2.0",
			Method:  subscriptionMethod,
			Params: notificationParams{
				Subscription: sub.id,
				Result:       result,
			},
		})
		if err != nil {
			m.logger.Error("failed to encode notification", "type", kind, "err", err)

			return
		}

		select {
		case sub.msgCh <- msg:
		default:
			m.logger.Warn("subscriber is too slow, dropping notification", "id", sub.id, "type", kind)
			metrics.IncrCounter([]string{jsonRPCMetric, "notifications_dropped"}, 1)
		}
	}
}
