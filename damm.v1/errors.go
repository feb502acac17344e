package dammV1

import "errors"

var (
	// ErrPoolDisabled is returned when quoting against a disabled pool.
	ErrPoolDisabled = errors.New("pool disabled")
	// ErrSwapDisabled is returned when the pool has not reached its
	// activation point yet.
	ErrSwapDisabled = errors.New("swap is disabled")
	// ErrInvalidInTokenMint is returned when the input mint belongs to
	// neither side of the pool.
	ErrInvalidInTokenMint = errors.New("in token mint not matches with pool token mints")
	// ErrExceededReserve is returned when the computed out amount would
	// drain the destination vault's token account.
	ErrExceededReserve = errors.New("out amount > vault reserve")
	// ErrPoolNotFound is returned when no pool account matches the query.
	ErrPoolNotFound = errors.New("pool not found")
)
