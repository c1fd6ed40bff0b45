package aggregator

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/relay-aggregator/aggregator/storage"
	"github.com/0xPolygon/relay-aggregator/types"
)

// SignatureAggregator collects relayer signatures and evaluates quorum
type SignatureAggregator struct {
	logger      hclog.Logger
	store       storage.Storage
	access      *AccessController
	notifier    Notifier
	confirmOnce bool
}

func NewSignatureAggregator(
	logger hclog.Logger,
	store storage.Storage,
	access *AccessController,
	notifier Notifier,
	confirmOnce bool,
) *SignatureAggregator {
	return &SignatureAggregator{
		logger:      logger,
		store:       store,
		access:      access,
		notifier:    notifier,
		confirmOnce: confirmOnce,
	}
}

// SubmitSignature records the signature of caller for a registered packet
// and emits a confirmation when quorum holds afterwards
func (s *SignatureAggregator) SubmitSignature(
	caller types.Address,
	srcNetwork, contractAddress string,
	srcSn *big.Int,
	signature []byte,
) error {
	if err := s.access.RequireRelayer(caller); err != nil {
		return err
	}

	if err := validateSn(srcSn); err != nil {
		return err
	}

	key := types.CreatePacketKey(srcNetwork, contractAddress, srcSn)
	id := types.CreatePacketID(srcNetwork, contractAddress, srcSn)

	packet, ok, err := s.store.ReadPacket(key)
	if err != nil {
		return err
	}

	if !ok {
		return fmt.Errorf("%w: %s", ErrPacketNotFound, id)
	}

	_, signed, err := s.store.ReadSignature(key, caller)
	if err != nil {
		return err
	}

	if signed {
		return fmt.Errorf("%w: %s by %s", ErrDuplicateSignature, id, caller)
	}

	prev, err := s.countSignatures(key)
	if err != nil {
		return err
	}

	if err := s.store.WriteSignature(key, caller, signature); err != nil {
		return err
	}

	// caller may appear more than once in the relayer list
	count := prev
	relayers := s.access.relayers

	for _, relayer := range relayers {
		if relayer == caller {
			count++
		}
	}

	s.logger.Debug("signature added", "id", id, "relayer", caller, "signatures", count, "threshold", Threshold(len(relayers)))

	emit := hasQuorum(count, len(relayers))
	if s.confirmOnce {
		emit = crossesQuorum(prev, count, len(relayers))
	}

	if emit {
		s.logger.Debug("packet confirmed", "id", id, "signatures", count)
		incrCounter("packets_confirmed")

		s.notifier.PacketConfirmed(&PacketConfirmedEvent{
			SrcNetwork:      packet.SrcNetwork,
			ContractAddress: packet.ContractAddress,
			SrcSn:           packet.SrcSn,
			DstNetwork:      packet.DstNetwork,
			Data:            packet.Data,
		})
	}

	return nil
}

// GetSignatures returns the signatures of a packet in relayer set order
func (s *SignatureAggregator) GetSignatures(srcNetwork, contractAddress string, srcSn *big.Int) ([][]byte, error) {
	if err := validateSn(srcSn); err != nil {
		return nil, err
	}

	key := types.CreatePacketKey(srcNetwork, contractAddress, srcSn)
	signatures := make([][]byte, 0)

	for _, relayer := range s.access.relayers {
		signature, ok, err := s.store.ReadSignature(key, relayer)
		if err != nil {
			return nil, err
		}

		if ok {
			signatures = append(signatures, signature)
		}
	}

	return signatures, nil
}

// IsConfirmed reports whether a registered packet holds quorum
func (s *SignatureAggregator) IsConfirmed(srcNetwork, contractAddress string, srcSn *big.Int) (bool, error) {
	if err := validateSn(srcSn); err != nil {
		return false, err
	}

	key := types.CreatePacketKey(srcNetwork, contractAddress, srcSn)

	_, ok, err := s.store.ReadPacket(key)
	if err != nil || !ok {
		return false, err
	}

	count, err := s.countSignatures(key)
	if err != nil {
		return false, err
	}

	return hasQuorum(count, len(s.access.relayers)), nil
}

func (s *SignatureAggregator) countSignatures(key types.PacketKey) (int, error) {
	count := 0

	for _, relayer := range s.access.relayers {
		_, ok, err := s.store.ReadSignature(key, relayer)
		if err != nil {
			return 0, err
		}

		if ok {
			count++
		}
	}

	return count, nil
}
