package dynamic_amm

import (
	"github.com/gagliardetto/solana-go"
)

// DeriveLpMintAddress derives the pool LP mint PDA.
func DeriveLpMintAddress(pool solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("lp_mint"), pool.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveVaultLpTokenAddress derives the pool's LP token account in a vault.
func DeriveVaultLpTokenAddress(vault, pool solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{vault.Bytes(), pool.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveLockEscrowAddress derives the lock escrow PDA of an owner in a pool.
func DeriveLockEscrowAddress(pool, owner solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("lock_escrow"), pool.Bytes(), owner.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveProtocolFeeAddress derives the protocol fee token account PDA for a
// pool token mint.
func DeriveProtocolFeeAddress(mint, pool solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{[]byte("fee"), mint.Bytes(), pool.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}
