package aggregator

import (
	"fmt"

	"github.com/0xPolygon/relay-aggregator/aggregator/storage"
	"github.com/0xPolygon/relay-aggregator/types"
)

// AccessController answers the authorization questions of the aggregator.
// It holds no lock of its own and never mutates state.
type AccessController struct {
	store    storage.Storage
	relayers []types.Address
}

func NewAccessController(store storage.Storage, relayers []types.Address) *AccessController {
	return &AccessController{
		store:    store,
		relayers: relayers,
	}
}

// RequireAdmin fails unless an admin is set and caller is that admin
func (a *AccessController) RequireAdmin(caller types.Address) error {
	admin, ok, err := a.admin()
	if err != nil {
		return err
	}

	if !ok || admin != caller {
		return fmt.Errorf("%w: caller %q is not the leader relayer", ErrUnauthorized, caller)
	}

	return nil
}

// admin reads the admin slot. A stored zero address counts as unset.
func (a *AccessController) admin() (types.Address, bool, error) {
	admin, ok, err := a.store.ReadAdmin()
	if err != nil || !ok || admin.IsZero() {
		return types.ZeroAddress, false, err
	}

	return admin, true, nil
}

// RequireRelayer fails unless caller is in the relayer set
func (a *AccessController) RequireRelayer(caller types.Address) error {
	for _, relayer := range a.relayers {
		if relayer == caller {
			return nil
		}
	}

	return fmt.Errorf("%w: caller %q is not a registered relayer", ErrUnauthorized, caller)
}

// Relayers returns a copy of the relayer set in registration order
func (a *AccessController) Relayers() []types.Address {
	return append([]types.Address{}, a.relayers...)
}
