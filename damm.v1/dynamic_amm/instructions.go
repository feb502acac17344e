package dynamic_amm

import (
	"bytes"
	"crypto/sha256"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// SwapParameters are the borsh-encoded arguments of the swap instruction.
type SwapParameters struct {
	InAmount         uint64
	MinimumOutAmount uint64
}

func instructionDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("global:" + name))
	return hash[:8]
}

// NewSwapInstruction builds the swap instruction. protocolTokenFee must be
// the admin fee account of the input token side.
func NewSwapInstruction(
	params SwapParameters,
	pool solana.PublicKey,
	userSourceToken solana.PublicKey,
	userDestinationToken solana.PublicKey,
	aVault solana.PublicKey,
	bVault solana.PublicKey,
	aTokenVault solana.PublicKey,
	bTokenVault solana.PublicKey,
	aVaultLpMint solana.PublicKey,
	bVaultLpMint solana.PublicKey,
	aVaultLp solana.PublicKey,
	bVaultLp solana.PublicKey,
	protocolTokenFee solana.PublicKey,
	user solana.PublicKey,
	vaultProgram solana.PublicKey,
	tokenProgram solana.PublicKey,
) (solana.Instruction, error) {
	data := new(bytes.Buffer)
	data.Write(instructionDiscriminator("swap"))
	if err := binary.NewBorshEncoder(data).Encode(params); err != nil {
		return nil, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(pool).WRITE(),
		solana.Meta(userSourceToken).WRITE(),
		solana.Meta(userDestinationToken).WRITE(),
		solana.Meta(aVault).WRITE(),
		solana.Meta(bVault).WRITE(),
		solana.Meta(aTokenVault).WRITE(),
		solana.Meta(bTokenVault).WRITE(),
		solana.Meta(aVaultLpMint).WRITE(),
		solana.Meta(bVaultLpMint).WRITE(),
		solana.Meta(aVaultLp).WRITE(),
		solana.Meta(bVaultLp).WRITE(),
		solana.Meta(protocolTokenFee).WRITE(),
		solana.Meta(user).SIGNER(),
		solana.Meta(vaultProgram),
		solana.Meta(tokenProgram),
	}

	return solana.NewInstruction(ProgramID, accounts, data.Bytes()), nil
}
