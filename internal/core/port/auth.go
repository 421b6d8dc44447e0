package port

import "context"

// Identity is the verified user behind a bearer credential. The core never
// inspects it beyond the access-control gate.
type Identity struct {
	ID    string
	Email string
}

// AuthPort exchanges an opaque bearer token with the external auth
// collaborator. Implementations must bound the call with a timeout and
// honor ctx cancellation; a slow collaborator fails closed.
type AuthPort interface {
	GetUser(ctx context.Context, token string) (*Identity, error)
}
