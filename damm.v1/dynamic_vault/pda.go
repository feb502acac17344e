package dynamic_vault

import (
	"github.com/gagliardetto/solana-go"
)

// Seed prefixes of the dynamic vault program.
var (
	VaultPrefix      = []byte("vault")
	TokenVaultPrefix = []byte("token_vault")
	LpMintPrefix     = []byte("lp_mint")
)

// Base address used for permissionless vault derivation.
var BaseAddress = solana.MustPublicKeyFromBase58("HWzXGcGHy4tcpYfaRDCyLNzXqBTv3E6BttpCH2vJxArv")

// DeriveVaultAddress derives the vault PDA for a token mint.
func DeriveVaultAddress(tokenMint solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{VaultPrefix, tokenMint.Bytes(), BaseAddress.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveTokenVaultAddress derives the vault's token account PDA.
func DeriveTokenVaultAddress(vault solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{TokenVaultPrefix, vault.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}

// DeriveLpMintAddress derives the vault's LP mint PDA.
func DeriveLpMintAddress(vault solana.PublicKey) (solana.PublicKey, error) {
	seeds := [][]byte{LpMintPrefix, vault.Bytes()}

	pda, _, err := solana.FindProgramAddress(seeds, ProgramID)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return pda, nil
}
