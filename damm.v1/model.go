package dammV1

import (
	"github.com/gagliardetto/solana-go"

	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_amm"
	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_vault"
	solanago "github.com/MeteoraAg/damm-v1-sdk/solana"
)

// Pool pairs a decoded pool state with its address.
type Pool struct {
	*dynamic_amm.Pool
	Address solana.PublicKey
}

// VaultInfo is one side of a pool expressed in vault terms: the pool's LP
// holding, the LP mint supply, and the vault state itself.
type VaultInfo struct {
	// Amount of vault LP held by the pool
	LpAmount uint64
	// Vault LP mint supply
	LpSupply uint64
	// Vault state
	Vault *dynamic_vault.Vault
}

// QuoteData is the full account snapshot a quote is computed from. It is
// assembled off chain in one or two RPC round trips and handed to
// ComputeQuote, which performs no network access.
type QuoteData struct {
	// Pool state to swap
	Pool *dynamic_amm.Pool
	// Vault state of vault A
	VaultA *dynamic_vault.Vault
	// Vault state of vault B
	VaultB *dynamic_vault.Vault
	// Pool's vault A LP token account
	PoolVaultALpToken *solanago.Account
	// Pool's vault B LP token account
	PoolVaultBLpToken *solanago.Account
	// LP mint of vault A
	VaultALpMint *solanago.Token
	// LP mint of vault B
	VaultBLpMint *solanago.Token
	// Token account of vault A
	VaultAToken *solanago.Account
	// Token account of vault B
	VaultBToken *solanago.Account
	// Clock sysvar snapshot
	Clock *solanago.Clock
	// Stake account data, only for depeg pools
	StakeData map[solana.PublicKey][]byte
}

// QuoteResult is the outcome of a swap quote.
type QuoteResult struct {
	// Swap out amount
	OutAmount uint64
	// Total fee amount, charged in the input token
	Fee uint64
}
