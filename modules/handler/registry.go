package handler

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/teebridge/teelc/modules/core/context"
	"github.com/teebridge/teelc/modules/core/exported"
	"github.com/teebridge/teelc/modules/core/registry"
)

// getLightClientByClientID resolves the light client serving the given
// client identifier: the client type is read from the host store and looked
// up in the registry. An unknown client ID or unregistered client type is a
// terminal error for the call, never a silent default.
func getLightClientByClientID(ctx *context.Context, reg *registry.Registry, clientID string) (exported.LightClient, error) {
	clientType, err := ctx.ClientType(clientID)
	if err != nil {
		return nil, err
	}
	lc, ok := reg.GetRoute(clientType)
	if !ok {
		return nil, errorsmod.Wrapf(ErrLightClientNotFound, "client_id=%s client_type=%s", clientID, clientType)
	}
	return lc, nil
}
