package storage

import "errors"

// Errors returned by storage implementations when transactions are misused.
var (
	// ErrAlreadyInTx is returned by Begin on a handle that is already bound to
	// a transaction.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned by Commit or Rollback on a handle that is not
	// bound to a transaction.
	ErrNotInTx = errors.New("not in tx")
)
