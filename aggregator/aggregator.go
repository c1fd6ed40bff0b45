package aggregator

import (
	"math/big"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/relay-aggregator/aggregator/storage"
	"github.com/0xPolygon/relay-aggregator/types"
)

// Config holds the tunables of the aggregator
type Config struct {
	// ConfirmOnce emits PacketConfirmed only for the signature that first
	// reaches quorum. By default every accepted signature at quorum emits it.
	ConfirmOnce bool
}

// Aggregator is the authority boundary of the relay. Every operation runs
// its authorization and its mutation under one lock.
type Aggregator struct {
	lock sync.Mutex

	logger hclog.Logger
	store  storage.Storage

	access     *AccessController
	registry   *PacketRegistry
	signatures *SignatureAggregator
}

// NewAggregator loads the relayer set from store and wires the components
func NewAggregator(logger hclog.Logger, store storage.Storage, notifier Notifier, config *Config) (*Aggregator, error) {
	if config == nil {
		config = &Config{}
	}

	if notifier == nil {
		notifier = NullNotifier{}
	}

	logger = logger.Named("aggregator")

	relayers, err := store.ReadRelayers()
	if err != nil {
		return nil, err
	}

	setRelayersGauge(len(relayers))

	access := NewAccessController(store, relayers)

	return &Aggregator{
		logger:     logger,
		store:      store,
		access:     access,
		registry:   NewPacketRegistry(logger, store, access, notifier),
		signatures: NewSignatureAggregator(logger, store, access, notifier, config.ConfirmOnce),
	}, nil
}

// Initialize stores the admin and relayer set on first start
func (a *Aggregator) Initialize(admin types.Address, relayers []types.Address) (bool, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.registry.Initialize(admin, relayers)
}

// SetAdmin hands the admin slot to admin on behalf of the current admin
func (a *Aggregator) SetAdmin(caller, admin types.Address) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if err := a.registry.SetAdmin(caller, admin); err != nil {
		incrRejected("set_admin", err)

		return err
	}

	return nil
}

// GetAdmin returns the admin, or the zero address when unset
func (a *Aggregator) GetAdmin() (types.Address, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.registry.GetAdmin()
}

// RegisterPacket stores a new packet on behalf of the admin
func (a *Aggregator) RegisterPacket(
	caller types.Address,
	srcNetwork, contractAddress string,
	srcSn *big.Int,
	dstNetwork string,
	data []byte,
) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	packet := types.NewPacket(srcNetwork, contractAddress, srcSn, dstNetwork, data)
	if err := a.registry.RegisterPacket(caller, packet); err != nil {
		incrRejected("register_packet", err)

		return err
	}

	incrCounter("packets_registered")

	return nil
}

// SubmitSignature records a relayer signature for a registered packet
func (a *Aggregator) SubmitSignature(
	caller types.Address,
	srcNetwork, contractAddress string,
	srcSn *big.Int,
	signature []byte,
) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	if err := a.signatures.SubmitSignature(caller, srcNetwork, contractAddress, srcSn, signature); err != nil {
		incrRejected("submit_signature", err)

		return err
	}

	incrCounter("signatures_accepted")

	return nil
}

// GetSignatures returns the signatures of a packet in relayer set order
func (a *Aggregator) GetSignatures(srcNetwork, contractAddress string, srcSn *big.Int) ([][]byte, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.signatures.GetSignatures(srcNetwork, contractAddress, srcSn)
}

// GetPacket returns the stored packet
func (a *Aggregator) GetPacket(srcNetwork, contractAddress string, srcSn *big.Int) (*types.Packet, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.registry.GetPacket(srcNetwork, contractAddress, srcSn)
}

// IsConfirmed reports whether a registered packet holds quorum
func (a *Aggregator) IsConfirmed(srcNetwork, contractAddress string, srcSn *big.Int) (bool, error) {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.signatures.IsConfirmed(srcNetwork, contractAddress, srcSn)
}

// GetRelayers returns the relayer set in registration order
func (a *Aggregator) GetRelayers() []types.Address {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.access.Relayers()
}

// Threshold returns the signatures required for quorum with the current relayer set
func (a *Aggregator) Threshold() int {
	a.lock.Lock()
	defer a.lock.Unlock()

	return Threshold(len(a.access.relayers))
}

// RequireAdmin exposes the admin check to callers that gate their own actions
func (a *Aggregator) RequireAdmin(caller types.Address) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.access.RequireAdmin(caller)
}

// RequireRelayer fails unless caller is in the relayer set
func (a *Aggregator) RequireRelayer(caller types.Address) error {
	a.lock.Lock()
	defer a.lock.Unlock()

	return a.access.RequireRelayer(caller)
}
