package aggregator

import (
	"math/big"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/relay-aggregator/types"
)

// PacketRegisteredEvent is emitted when the admin registers a new packet
type PacketRegisteredEvent struct {
	SrcNetwork      string
	ContractAddress string
	SrcSn           *big.Int
}

func (e *PacketRegisteredEvent) ID() types.PacketID {
	return types.CreatePacketID(e.SrcNetwork, e.ContractAddress, e.SrcSn)
}

// PacketConfirmedEvent is emitted when an accepted signature leaves a packet at quorum
type PacketConfirmedEvent struct {
	SrcNetwork      string
	ContractAddress string
	SrcSn           *big.Int
	DstNetwork      string
	Data            []byte
}

func (e *PacketConfirmedEvent) ID() types.PacketID {
	return types.CreatePacketID(e.SrcNetwork, e.ContractAddress, e.SrcSn)
}

// Notifier receives aggregator events. Methods are called while the
// aggregator lock is held and must not block.
type Notifier interface {
	PacketRegistered(evnt *PacketRegisteredEvent)
	PacketConfirmed(evnt *PacketConfirmedEvent)
}

// NullNotifier drops every event
type NullNotifier struct{}

func (NullNotifier) PacketRegistered(*PacketRegisteredEvent) {}

func (NullNotifier) PacketConfirmed(*PacketConfirmedEvent) {}

// LogNotifier writes events to the logger
type LogNotifier struct {
	logger hclog.Logger
}

func NewLogNotifier(logger hclog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("events")}
}

func (l *LogNotifier) PacketRegistered(evnt *PacketRegisteredEvent) {
	l.logger.Info("packet registered", "id", evnt.ID())
}

func (l *LogNotifier) PacketConfirmed(evnt *PacketConfirmedEvent) {
	l.logger.Info("packet confirmed", "id", evnt.ID(), "dst", evnt.DstNetwork)
}

// MultiNotifier fans events out to every notifier in order
type MultiNotifier []Notifier

func (m MultiNotifier) PacketRegistered(evnt *PacketRegisteredEvent) {
	for _, n := range m {
		n.PacketRegistered(evnt)
	}
}

func (m MultiNotifier) PacketConfirmed(evnt *PacketConfirmedEvent) {
	for _, n := range m {
		n.PacketConfirmed(evnt)
	}
}
