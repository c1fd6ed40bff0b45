package aggregator

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/relay-aggregator/aggregator/storage"
	"github.com/0xPolygon/relay-aggregator/types"
)

// PacketRegistry owns the admin slot, the relayer set and the packet records
type PacketRegistry struct {
	logger   hclog.Logger
	store    storage.Storage
	access   *AccessController
	notifier Notifier
}

func NewPacketRegistry(
	logger hclog.Logger,
	store storage.Storage,
	access *AccessController,
	notifier Notifier,
) *PacketRegistry {
	return &PacketRegistry{
		logger:   logger,
		store:    store,
		access:   access,
		notifier: notifier,
	}
}

// Initialize stores admin and relayers when no admin is set yet.
// It reports whether anything was written.
func (r *PacketRegistry) Initialize(admin types.Address, relayers []types.Address) (bool, error) {
	if admin.IsZero() {
		return false, fmt.Errorf("%w: empty admin", ErrInvalidAdmin)
	}

	_, ok, err := r.access.admin()
	if err != nil {
		return false, err
	}

	if ok {
		r.logger.Debug("already initialized, skipping")

		return false, nil
	}

	if err := r.store.WriteInitialState(admin, relayers); err != nil {
		return false, err
	}

	stored, err := r.store.ReadRelayers()
	if err != nil {
		return false, err
	}

	r.access.relayers = stored
	setRelayersGauge(len(stored))

	r.logger.Info("initialized", "admin", admin, "relayers", len(stored), "threshold", Threshold(len(stored)))

	return true, nil
}

// SetAdmin replaces the admin. Only the current admin may call it.
func (r *PacketRegistry) SetAdmin(caller, admin types.Address) error {
	if err := r.access.RequireAdmin(caller); err != nil {
		return err
	}

	if err := r.store.WriteAdmin(admin); err != nil {
		return err
	}

	r.logger.Info("admin changed", "from", caller, "to", admin)

	return nil
}

// GetAdmin returns the admin, or the zero address when unset
func (r *PacketRegistry) GetAdmin() (types.Address, error) {
	admin, _, err := r.access.admin()

	return admin, err
}

// RegisterPacket stores a new packet on behalf of the admin
func (r *PacketRegistry) RegisterPacket(caller types.Address, packet *types.Packet) error {
	if err := r.access.RequireAdmin(caller); err != nil {
		return err
	}

	if err := validatePacket(packet); err != nil {
		return err
	}

	_, exists, err := r.store.ReadPacket(packet.Key())
	if err != nil {
		return err
	}

	if exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePacket, packet.ID())
	}

	if err := r.store.WritePacket(packet); err != nil {
		return err
	}

	r.logger.Debug("packet registered", "id", packet.ID(), "dst", packet.DstNetwork)

	r.notifier.PacketRegistered(&PacketRegisteredEvent{
		SrcNetwork:      packet.SrcNetwork,
		ContractAddress: packet.ContractAddress,
		SrcSn:           new(big.Int).Set(packet.SrcSn),
	})

	return nil
}

// GetPacket returns the stored packet
func (r *PacketRegistry) GetPacket(srcNetwork, contractAddress string, srcSn *big.Int) (*types.Packet, error) {
	if err := validateSn(srcSn); err != nil {
		return nil, err
	}

	packet, ok, err := r.store.ReadPacket(types.CreatePacketKey(srcNetwork, contractAddress, srcSn))
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPacketNotFound, types.CreatePacketID(srcNetwork, contractAddress, srcSn))
	}

	return packet, nil
}

func validatePacket(packet *types.Packet) error {
	if packet == nil {
		return fmt.Errorf("%w: missing sequence number", ErrInvalidPacket)
	}

	return validateSn(packet.SrcSn)
}

// validateSn guards every operation taking the identifying triple.
// Keys encode the magnitude only, so -n would address packet n.
func validateSn(srcSn *big.Int) error {
	if srcSn == nil {
		return fmt.Errorf("%w: missing sequence number", ErrInvalidPacket)
	}

	if srcSn.Sign() < 0 {
		return fmt.Errorf("%w: negative sequence number %s", ErrInvalidPacket, srcSn)
	}

	return nil
}
