package dynamic_vault

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// ProgramID is the dynamic vault program address.
var ProgramID = solana.MustPublicKeyFromBase58("24Uqj9JCLxUeoC3hGfh5W3s9FM9uCHDS2SG3LYwBpyTi")

// MaxStrategy is the number of strategy slots a vault carries.
const MaxStrategy = 30

// LockedProfitDegradationDenominator scales the locked-profit release rate.
const LockedProfitDegradationDenominator uint64 = 1_000_000_000_000

// VaultBumps holds the PDA bump seeds of a vault.
type VaultBumps struct {
	VaultBump      uint8
	TokenVaultBump uint8
}

// LockedProfitTracker drips realized profit into the vault's total value
// over time, so a report of fresh yield cannot be sandwiched.
type LockedProfitTracker struct {
	LastUpdatedLockedProfit uint64
	LastReport              uint64
	LockedProfitDegradation uint64
}

// Vault is the dynamic vault account state. TotalAmount includes tokens
// currently deployed to strategies, not just the idle token vault balance.
type Vault struct {
	Enabled             uint8
	Bumps               VaultBumps
	TotalAmount         uint64
	TokenVault          solana.PublicKey
	FeeVault            solana.PublicKey
	TokenMint           solana.PublicKey
	LpMint              solana.PublicKey
	Strategies          [MaxStrategy]solana.PublicKey
	Base                solana.PublicKey
	Admin               solana.PublicKey
	Operator            solana.PublicKey
	LockedProfitTracker LockedProfitTracker
}

func accountDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	return hash[:8]
}

// ParseVault deserializes a vault account, verifying the anchor discriminator.
func ParseVault(data []byte) (*Vault, error) {
	disc := accountDiscriminator("Vault")
	if len(data) < len(disc) || !bytes.Equal(data[:len(disc)], disc) {
		return nil, fmt.Errorf("vault account discriminator mismatch")
	}
	vault := &Vault{}
	if err := binary.NewBorshDecoder(data[len(disc):]).Decode(vault); err != nil {
		return nil, fmt.Errorf("decode vault account: %w", err)
	}
	return vault, nil
}
