package dynamic_amm

import (
	"github.com/gagliardetto/solana-go"
)

// ProgramID is the dynamic AMM program address.
var ProgramID = solana.MustPublicKeyFromBase58("Eo7WjKq67rjJQSZxS6z3YkapzY3eMj6Xy8X5EQVn5UaB")

// Account key constants used to build program account filters.
var (
	// AccountKeyPool is the account key for pool accounts
	AccountKeyPool = "Pool"
	// AccountKeyLockEscrow is the account key for lock escrow accounts
	AccountKeyLockEscrow = "LockEscrow"
)

const (
	// FeeCurvePointNumber is the number of control points a fee curve carries.
	FeeCurvePointNumber = 20

	// FeeCurveBpsScale converts a resolved fee-curve bps value into the
	// trade fee numerator domain (denominator 100_000).
	FeeCurveBpsScale uint64 = 10

	// DepegPrecision scales depeg virtual prices.
	DepegPrecision uint64 = 1_000_000

	// BaseCacheExpires is how long a stored depeg virtual price stays usable,
	// in seconds.
	BaseCacheExpires uint64 = 60 * 10

	// CurveMaxIterations bounds the stable-swap Newton iterations.
	CurveMaxIterations = 32

	// CurvePrecision is the convergence tolerance of the stable-swap solve.
	CurvePrecision uint64 = 1
)
