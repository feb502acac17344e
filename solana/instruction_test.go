package solana

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/stretchr/testify/require"
)

func TestMergeInstructionsDedupesAtaCreate(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	wallet := solana.NewWallet().PublicKey()
	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()

	instructions := []solana.Instruction{
		associatedtokenaccount.NewCreateInstruction(payer, wallet, mintA).Build(),
		associatedtokenaccount.NewCreateInstruction(payer, wallet, mintA).Build(),
		associatedtokenaccount.NewCreateInstruction(payer, wallet, mintB).Build(),
	}

	merged := MergeInstructions(instructions)
	require.Len(t, merged, 2)
}

func TestMergeInstructionsSumsTransferLamports(t *testing.T) {
	from := solana.NewWallet().PublicKey()
	to := solana.NewWallet().PublicKey()

	instructions := []solana.Instruction{
		system.NewTransferInstruction(100, from, to).Build(),
		system.NewTransferInstruction(200, from, to).Build(),
	}

	merged := MergeInstructions(instructions)
	require.Len(t, merged, 1)

	inst, ok := merged[0].(*system.Instruction)
	require.True(t, ok)
	transfer, ok := inst.Impl.(system.Transfer)
	require.True(t, ok)
	require.Equal(t, uint64(300), *transfer.Lamports)
}

func TestMergeInstructionsDedupesWrapUnwrap(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	wsolATA := solana.NewWallet().PublicKey()

	instructions := []solana.Instruction{
		token.NewSyncNativeInstruction(wsolATA).Build(),
		token.NewSyncNativeInstruction(wsolATA).Build(),
		token.NewCloseAccountInstruction(wsolATA, owner, owner, []solana.PublicKey{}).Build(),
		token.NewCloseAccountInstruction(wsolATA, owner, owner, []solana.PublicKey{}).Build(),
	}

	merged := MergeInstructions(instructions)
	require.Len(t, merged, 2)
}

func TestMergeInstructionsKeepsUnrelated(t *testing.T) {
	from := solana.NewWallet().PublicKey()
	to := solana.NewWallet().PublicKey()
	other := solana.NewWallet().PublicKey()

	instructions := []solana.Instruction{
		system.NewTransferInstruction(100, from, to).Build(),
		system.NewTransferInstruction(100, from, other).Build(),
	}

	merged := MergeInstructions(instructions)
	require.Len(t, merged, 2)
}
