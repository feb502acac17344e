package dammV1

import (
	"context"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	sendandconfirmtransaction "github.com/gagliardetto/solana-go/rpc/sendAndConfirmTransaction"

	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_amm"
	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_vault"
	solanago "github.com/MeteoraAg/damm-v1-sdk/solana"
)

// vaultRelatedKeys resolves a vault's token vault and LP mint, deriving them
// when the vault account does not exist yet.
func vaultRelatedKeys(vaultKey solana.PublicKey, vaultData []byte) (solana.PublicKey, solana.PublicKey, error) {
	if len(vaultData) > 0 {
		vault, err := dynamic_vault.ParseVault(vaultData)
		if err != nil {
			return solana.PublicKey{}, solana.PublicKey{}, err
		}
		return vault.TokenVault, vault.LpMint, nil
	}

	tokenVault, err := dynamic_vault.DeriveTokenVaultAddress(vaultKey)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}
	lpMint, err := dynamic_vault.DeriveLpMintAddress(vaultKey)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}
	return tokenVault, lpMint, nil
}

func SwapInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	payer solana.PublicKey,
	owner solana.PublicKey,
	poolState *Pool,
	inTokenMint solana.PublicKey,
	amountIn *big.Int,
	minimumAmountOut *big.Int,
) ([]solana.Instruction, error) {
	if amountIn.Cmp(big.NewInt(0)) <= 0 {
		return nil, fmt.Errorf("amountIn must be greater than 0")
	}

	var outTokenMint, protocolTokenFee solana.PublicKey
	switch {
	case inTokenMint.Equals(poolState.TokenAMint):
		outTokenMint = poolState.TokenBMint
		protocolTokenFee = poolState.AdminTokenAFee
	case inTokenMint.Equals(poolState.TokenBMint):
		outTokenMint = poolState.TokenAMint
		protocolTokenFee = poolState.AdminTokenBFee
	default:
		return nil, ErrInvalidInTokenMint
	}

	var instructions []solana.Instruction

	inputTokenAccount, err := solanago.PrepareTokenATA(ctx, rpcClient, owner, inTokenMint, payer, &instructions)
	if err != nil {
		return nil, err
	}

	outputTokenAccount, err := solanago.PrepareTokenATA(ctx, rpcClient, owner, outTokenMint, payer, &instructions)
	if err != nil {
		return nil, err
	}

	if inTokenMint.Equals(solana.WrappedSol) {
		// wrap SOL by transferring lamports into the WSOL ATA
		wrapSOLIx := system.NewTransferInstruction(
			amountIn.Uint64(),
			owner,
			inputTokenAccount,
		).Build()
		// sync the WSOL account to update its balance
		syncNativeIx := token.NewSyncNativeInstruction(
			inputTokenAccount,
		).Build()
		instructions = append(instructions, wrapSOLIx, syncNativeIx)
	}

	vaults, err := solanago.GetMultipleAccountInfo(ctx, rpcClient, []solana.PublicKey{poolState.AVault, poolState.BVault})
	if err != nil {
		return nil, err
	}

	var aVaultData, bVaultData []byte
	if vaults.Value[0] != nil {
		aVaultData = vaults.Value[0].Data.GetBinary()
	}
	if vaults.Value[1] != nil {
		bVaultData = vaults.Value[1].Data.GetBinary()
	}

	aTokenVault, aVaultLpMint, err := vaultRelatedKeys(poolState.AVault, aVaultData)
	if err != nil {
		return nil, err
	}
	bTokenVault, bVaultLpMint, err := vaultRelatedKeys(poolState.BVault, bVaultData)
	if err != nil {
		return nil, err
	}

	swapIx, err := dynamic_amm.NewSwapInstruction(
		// Params:
		dynamic_amm.SwapParameters{
			InAmount:         amountIn.Uint64(),
			MinimumOutAmount: minimumAmountOut.Uint64(),
		},

		// Accounts:
		poolState.Address,
		inputTokenAccount,
		outputTokenAccount,
		poolState.AVault,
		poolState.BVault,
		aTokenVault,
		bTokenVault,
		aVaultLpMint,
		bVaultLpMint,
		poolState.AVaultLp,
		poolState.BVaultLp,
		protocolTokenFee,
		owner,
		dynamic_vault.ProgramID,
		solana.TokenProgramID,
	)
	if err != nil {
		return nil, err
	}
	instructions = append(instructions, swapIx)

	switch {
	case inTokenMint.Equals(solana.WrappedSol):
		unwrapIx := token.NewCloseAccountInstruction(
			inputTokenAccount,
			owner,
			owner,
			[]solana.PublicKey{},
		).Build()
		instructions = append(instructions, unwrapIx)
	case outTokenMint.Equals(solana.WrappedSol):
		unwrapIx := token.NewCloseAccountInstruction(
			outputTokenAccount,
			owner,
			owner,
			[]solana.PublicKey{},
		).Build()
		instructions = append(instructions, unwrapIx)
	}

	return instructions, nil
}

func (m *DammV1) Swap(
	ctx context.Context,
	payer *solana.Wallet,
	owner *solana.Wallet,
	poolState *Pool,
	inTokenMint solana.PublicKey,
	amountIn *big.Int,
	minimumAmountOut *big.Int,
) (string, error) {
	instructions, err := SwapInstruction(
		ctx,
		m.rpcClient,
		payer.PublicKey(),
		owner.PublicKey(),
		poolState,
		inTokenMint,
		amountIn,
		minimumAmountOut,
	)
	if err != nil {
		return "", err
	}
	instructions = solanago.MergeInstructions(instructions)

	latestBlockhash, err := solanago.GetLatestBlockhash(ctx, m.rpcClient)
	if err != nil {
		return "", err
	}

	tx, err := solana.NewTransaction(instructions, latestBlockhash, solana.TransactionPayer(payer.PublicKey()))
	if err != nil {
		return "", err
	}

	if _, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		switch {
		case key.Equals(payer.PublicKey()):
			return &payer.PrivateKey
		case key.Equals(owner.PublicKey()):
			return &owner.PrivateKey
		default:
			return nil
		}
	}); err != nil {
		return "", err
	}

	if m.bSimulate {
		if _, err = m.rpcClient.SimulateTransactionWithOpts(
			ctx,
			tx,
			&rpc.SimulateTransactionOpts{
				SigVerify:  false,
				Commitment: rpc.CommitmentFinalized,
			}); err != nil {
			return "", err
		}
		return "-", nil
	}

	sig, err := m.rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: rpc.CommitmentFinalized,
		},
	)
	if err != nil {
		return "", err
	}

	if m.wsClient != nil {
		if _, err = sendandconfirmtransaction.WaitForConfirmation(ctx, m.wsClient, sig, nil); err != nil {
			return "", err
		}
	}
	return sig.String(), nil
}
