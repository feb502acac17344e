package dammV1

import (
	"context"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_amm"
	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_vault"
	solanago "github.com/MeteoraAg/damm-v1-sdk/solana"
)

func (m *DammV1) GetPool(ctx context.Context, poolAddress solana.PublicKey) (*Pool, error) {
	return GetPool(ctx, m.rpcClient, poolAddress)
}

func GetPool(
	ctx context.Context,
	rpcClient *rpc.Client,
	poolAddress solana.PublicKey,
) (*Pool, error) {
	out, err := solanago.GetAccountInfo(ctx, rpcClient, poolAddress)
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, ErrPoolNotFound
		}
		return nil, err
	}

	pool, err := dynamic_amm.ParsePool(out.Value.Data.GetBinary())
	if err != nil {
		return nil, err
	}
	return &Pool{pool, poolAddress}, nil
}

func (m *DammV1) GetPoolsByMints(ctx context.Context, tokenAMint, tokenBMint solana.PublicKey) ([]*Pool, error) {
	return GetPoolsByMints(ctx, m.rpcClient, tokenAMint, tokenBMint)
}

// GetPoolsByMints lists the pools trading the given pair. The memcmp filter
// narrows on token A server side; token B is checked after decoding.
func GetPoolsByMints(
	ctx context.Context,
	rpcClient *rpc.Client,
	tokenAMint solana.PublicKey,
	tokenBMint solana.PublicKey,
) ([]*Pool, error) {
	opt := solanago.GenProgramAccountFilter(
		dynamic_amm.AccountKeyPool,
		tokenAMint,
		solanago.ComputeStructOffset(new(dynamic_amm.Pool), "TokenAMint"),
	)

	outs, err := rpcClient.GetProgramAccountsWithOpts(ctx, dynamic_amm.ProgramID, opt)
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}

	var pools []*Pool
	for _, out := range outs {
		pool, err := dynamic_amm.ParsePool(out.Account.Data.GetBinary())
		if err != nil {
			return nil, err
		}
		if !pool.TokenBMint.Equals(tokenBMint) {
			continue
		}
		pools = append(pools, &Pool{pool, out.Pubkey})
	}
	return pools, nil
}

func (m *DammV1) GetLockEscrow(ctx context.Context, poolAddress, owner solana.PublicKey) (*dynamic_amm.LockEscrow, error) {
	return GetLockEscrow(ctx, m.rpcClient, poolAddress, owner)
}

func GetLockEscrow(
	ctx context.Context,
	rpcClient *rpc.Client,
	poolAddress solana.PublicKey,
	owner solana.PublicKey,
) (*dynamic_amm.LockEscrow, error) {
	lockEscrowPDA, err := dynamic_amm.DeriveLockEscrowAddress(poolAddress, owner)
	if err != nil {
		return nil, err
	}

	out, err := solanago.GetAccountInfo(ctx, rpcClient, lockEscrowPDA)
	if err != nil {
		return nil, err
	}
	return dynamic_amm.ParseLockEscrow(out.Value.Data.GetBinary())
}

func (m *DammV1) GetQuoteData(ctx context.Context, poolState *Pool) (*QuoteData, error) {
	return GetQuoteData(ctx, m.rpcClient, poolState)
}

// GetQuoteData materializes the account snapshot ComputeQuote operates on.
// Two batched reads: the vault accounts come first because the second round
// needs the token vault and LP mint addresses stored inside them.
func GetQuoteData(
	ctx context.Context,
	rpcClient *rpc.Client,
	poolState *Pool,
) (*QuoteData, error) {
	outs, err := solanago.GetMultipleAccountInfo(ctx, rpcClient, []solana.PublicKey{
		poolState.AVault,
		poolState.BVault,
		poolState.AVaultLp,
		poolState.BVaultLp,
	})
	if err != nil {
		return nil, err
	}
	for i, out := range outs.Value {
		if out == nil {
			return nil, fmt.Errorf("pool vault account %d not found", i)
		}
	}

	vaultA, err := dynamic_vault.ParseVault(outs.Value[0].Data.GetBinary())
	if err != nil {
		return nil, err
	}
	vaultB, err := dynamic_vault.ParseVault(outs.Value[1].Data.GetBinary())
	if err != nil {
		return nil, err
	}

	poolVaultALpToken, err := new(solanago.AccountLayout).Decode(outs.Value[2].Data.GetBinary())
	if err != nil {
		return nil, err
	}
	poolVaultBLpToken, err := new(solanago.AccountLayout).Decode(outs.Value[3].Data.GetBinary())
	if err != nil {
		return nil, err
	}

	keys := []solana.PublicKey{
		vaultA.LpMint,
		vaultB.LpMint,
		vaultA.TokenVault,
		vaultB.TokenVault,
		solana.SysVarClockPubkey,
	}

	depegType := dynamic_amm.DepegTypeNone
	if poolState.CurveType.Kind == dynamic_amm.CurveKindStable {
		depegType = poolState.CurveType.Stable.Depeg.DepegType
	}
	if depegType != dynamic_amm.DepegTypeNone {
		keys = append(keys, poolState.Stake)
	}

	outs, err = solanago.GetMultipleAccountInfo(ctx, rpcClient, keys)
	if err != nil {
		return nil, err
	}
	// The stake account (index 5) may be missing; the depeg layer falls back
	// to the cached virtual price in that case.
	for i, out := range outs.Value {
		if out == nil && i < 5 {
			return nil, fmt.Errorf("quote account %d not found", i)
		}
	}

	vaultALpMint, err := new(solanago.TokenLayout).Decode(outs.Value[0].Data.GetBinary())
	if err != nil {
		return nil, err
	}
	vaultBLpMint, err := new(solanago.TokenLayout).Decode(outs.Value[1].Data.GetBinary())
	if err != nil {
		return nil, err
	}

	vaultAToken, err := new(solanago.AccountLayout).Decode(outs.Value[2].Data.GetBinary())
	if err != nil {
		return nil, err
	}
	vaultBToken, err := new(solanago.AccountLayout).Decode(outs.Value[3].Data.GetBinary())
	if err != nil {
		return nil, err
	}

	clock := &solanago.Clock{}
	if err := binary.NewBinDecoder(outs.Value[4].Data.GetBinary()).Decode(clock); err != nil {
		return nil, fmt.Errorf("failed to decode clock sysvar: %w", err)
	}

	stakeData := make(map[solana.PublicKey][]byte)
	if depegType != dynamic_amm.DepegTypeNone && outs.Value[5] != nil {
		stakeData[poolState.Stake] = outs.Value[5].Data.GetBinary()
	}

	return &QuoteData{
		Pool:              poolState.Pool,
		VaultA:            vaultA,
		VaultB:            vaultB,
		PoolVaultALpToken: poolVaultALpToken,
		PoolVaultBLpToken: poolVaultBLpToken,
		VaultALpMint:      vaultALpMint,
		VaultBLpMint:      vaultBLpMint,
		VaultAToken:       vaultAToken,
		VaultBToken:       vaultBToken,
		Clock:             clock,
		StakeData:         stakeData,
	}, nil
}
