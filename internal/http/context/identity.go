package context

import (
	"context"

	"github.com/bornholm/scheduler/internal/core/model"
)

const keyIdentity contextKey = "identity"

func Identity(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(keyIdentity).(model.Identity)
	if !ok || identity.IsZero() {
		return model.Identity{}, false
	}

	return identity, true
}

func SetIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, keyIdentity, identity)
}
