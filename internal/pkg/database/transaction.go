package database

import "context"

// TxManager runs a function as one transactional unit. Every check-then-write
// sequence in the engine (self-assign, batch assign, holiday synchronization)
// goes through it so concurrent operations cannot violate capacity or
// consistency invariants.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
