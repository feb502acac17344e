package dammV1

import (
	"context"
	"fmt"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"

	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/depeg"
	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_amm"
	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_vault"
	"github.com/MeteoraAg/damm-v1-sdk/math"
)

// ComputeQuote answers how much of the output token a swap of inAmount
// returns right now, and the fee charged. It is a pure function of the
// snapshot in quoteData and performs no network access.
//
// An input deposit does not trade at face value: it is first pushed through
// the input vault's share mint so the curve sees the amount the pool's LP
// position actually grew by, and the curve's output is round-tripped through
// the output vault's shares the same way. Fees come off the input side, with
// the protocol cut removed before the deposit simulation.
func ComputeQuote(inTokenMint solana.PublicKey, inAmount uint64, quoteData QuoteData) (*QuoteResult, error) {
	pool := quoteData.Pool
	clock := quoteData.Clock

	var currentPoint uint64
	switch pool.Bootstrapping.ActivationType {
	case dynamic_amm.ActivationTypeSlot:
		currentPoint = clock.Slot
	case dynamic_amm.ActivationTypeTimestamp:
		currentPoint = uint64(clock.UnixTimestamp)
	default:
		return nil, fmt.Errorf("invalid activation type %d", pool.Bootstrapping.ActivationType)
	}

	if !pool.Enabled {
		return nil, ErrPoolDisabled
	}
	if currentPoint < pool.Bootstrapping.ActivationPoint {
		return nil, ErrSwapDisabled
	}

	currentTime := uint64(clock.UnixTimestamp)

	curve := pool.CurveType
	if err := depeg.UpdateBaseVirtualPrice(&curve, quoteData.StakeData[pool.Stake], currentTime); err != nil {
		return nil, fmt.Errorf("fail to update base virtual price: %w", err)
	}

	if !inTokenMint.Equals(pool.TokenAMint) && !inTokenMint.Equals(pool.TokenBMint) {
		return nil, ErrInvalidInTokenMint
	}

	tokenAAmount, err := quoteData.VaultA.GetAmountByShare(
		currentTime,
		quoteData.PoolVaultALpToken.Amount,
		quoteData.VaultALpMint.Supply,
	)
	if err != nil {
		return nil, fmt.Errorf("fail to get token a amount: %w", err)
	}

	tokenBAmount, err := quoteData.VaultB.GetAmountByShare(
		currentTime,
		quoteData.PoolVaultBLpToken.Amount,
		quoteData.VaultBLpMint.Supply,
	)
	if err != nil {
		return nil, fmt.Errorf("fail to get token b amount: %w", err)
	}

	var (
		inVault              dynamic_vault.Vault
		outVault             dynamic_vault.Vault
		tradeDirection       dynamic_amm.TradeDirection
		inVaultLpAmount      uint64
		inVaultLpMintSupply  uint64
		outVaultLpMintSupply uint64
		outVaultTokenAmount  uint64
		inTokenTotalAmount   uint64
		outTokenTotalAmount  uint64
	)

	if inTokenMint.Equals(pool.TokenAMint) {
		tradeDirection = dynamic_amm.TradeDirectionAtoB
		inVault = *quoteData.VaultA
		outVault = *quoteData.VaultB
		inVaultLpAmount = quoteData.PoolVaultALpToken.Amount
		inVaultLpMintSupply = quoteData.VaultALpMint.Supply
		outVaultLpMintSupply = quoteData.VaultBLpMint.Supply
		outVaultTokenAmount = quoteData.VaultBToken.Amount
		inTokenTotalAmount = tokenAAmount
		outTokenTotalAmount = tokenBAmount
	} else {
		tradeDirection = dynamic_amm.TradeDirectionBtoA
		inVault = *quoteData.VaultB
		outVault = *quoteData.VaultA
		inVaultLpAmount = quoteData.PoolVaultBLpToken.Amount
		inVaultLpMintSupply = quoteData.VaultBLpMint.Supply
		outVaultLpMintSupply = quoteData.VaultALpMint.Supply
		outVaultTokenAmount = quoteData.VaultAToken.Amount
		inTokenTotalAmount = tokenBAmount
		outTokenTotalAmount = tokenAAmount
	}

	latestPoolFees, err := GetLatestPoolFees(pool, currentPoint)
	if err != nil {
		return nil, fmt.Errorf("fail to resolve pool fees: %w", err)
	}

	tradeFee, err := latestPoolFees.TradingFee(inAmount)
	if err != nil {
		return nil, fmt.Errorf("fail to calculate trading fee: %w", err)
	}

	protocolFee, err := latestPoolFees.ProtocolTradingFee(tradeFee)
	if err != nil {
		return nil, fmt.Errorf("fail to calculate protocol trading fee: %w", err)
	}

	// protocol fee is a cut from the trade fee
	tradeFee, err = math.CheckedSub(tradeFee, protocolFee)
	if err != nil {
		return nil, fmt.Errorf("fail to calculate trade fee: %w", err)
	}

	inAmountAfterProtocolFee, err := math.CheckedSub(inAmount, protocolFee)
	if err != nil {
		return nil, fmt.Errorf("fail to calculate in amount after protocol fee: %w", err)
	}

	beforeInTokenTotalAmount := inTokenTotalAmount

	// Simulate depositing the input into the vault: mint the shares the
	// deposit is worth, grow the vault, and measure how much the pool's
	// position grew. Vault rounding makes this differ from the raw input.
	inLp, err := inVault.GetUnmintAmount(currentTime, inAmountAfterProtocolFee, inVaultLpMintSupply)
	if err != nil {
		return nil, fmt.Errorf("fail to get in vault lp: %w", err)
	}

	inVault.TotalAmount, err = math.CheckedAdd(inVault.TotalAmount, inAmountAfterProtocolFee)
	if err != nil {
		return nil, fmt.Errorf("fail to add in vault total amount: %w", err)
	}

	newInVaultLp, err := math.CheckedAdd(inLp, inVaultLpAmount)
	if err != nil {
		return nil, fmt.Errorf("fail to get new in vault lp: %w", err)
	}

	newInVaultLpMintSupply, err := math.CheckedAdd(inVaultLpMintSupply, inLp)
	if err != nil {
		return nil, fmt.Errorf("fail to get new in vault lp mint supply: %w", err)
	}

	afterInTokenTotalAmount, err := inVault.GetAmountByShare(currentTime, newInVaultLp, newInVaultLpMintSupply)
	if err != nil {
		return nil, fmt.Errorf("fail to get after in token total amount: %w", err)
	}

	actualInAmount, err := math.CheckedSub(afterInTokenTotalAmount, beforeInTokenTotalAmount)
	if err != nil {
		return nil, fmt.Errorf("fail to get actual in amount: %w", err)
	}

	actualInAmountAfterFee, err := math.CheckedSub(actualInAmount, tradeFee)
	if err != nil {
		return nil, fmt.Errorf("fail to calculate in amount after fee: %w", err)
	}

	swapCurve, err := curve.SwapCurve()
	if err != nil {
		return nil, err
	}

	swapResult, err := swapCurve.Swap(actualInAmountAfterFee, inTokenTotalAmount, outTokenTotalAmount, tradeDirection)
	if err != nil {
		return nil, fmt.Errorf("fail to get swap result: %w", err)
	}

	outVaultLp, err := outVault.GetUnmintAmount(currentTime, swapResult.DestinationAmountSwapped, outVaultLpMintSupply)
	if err != nil {
		return nil, fmt.Errorf("fail to get out vault lp: %w", err)
	}

	outAmount, err := outVault.GetAmountByShare(currentTime, outVaultLp, outVaultLpMintSupply)
	if err != nil {
		return nil, fmt.Errorf("fail to get out amount: %w", err)
	}

	if outAmount >= outVaultTokenAmount {
		return nil, ErrExceededReserve
	}

	return &QuoteResult{
		OutAmount: outAmount,
		Fee:       tradeFee,
	}, nil
}

// ComputePoolTokens converts both sides of a pool from LP shares to
// underlying token amounts.
func ComputePoolTokens(currentTime uint64, vaultA, vaultB VaultInfo) (uint64, uint64, error) {
	tokenAAmount, err := vaultA.Vault.GetAmountByShare(currentTime, vaultA.LpAmount, vaultA.LpSupply)
	if err != nil {
		return 0, 0, fmt.Errorf("fail to get token a amount: %w", err)
	}
	tokenBAmount, err := vaultB.Vault.GetAmountByShare(currentTime, vaultB.LpAmount, vaultB.LpSupply)
	if err != nil {
		return 0, 0, fmt.Errorf("fail to get token b amount: %w", err)
	}
	return tokenAAmount, tokenBAmount, nil
}

// GetQuoteResult wraps a quote with the slippage bound and price impact a
// caller needs to place the swap.
type GetQuoteResult struct {
	SwapInAmount     *big.Int
	SwapOutAmount    *big.Int
	MinSwapOutAmount *big.Int
	TotalFee         *big.Int
	PriceImpact      *big.Float
}

func (m *DammV1) SwapQuote(
	ctx context.Context,
	poolAddress solana.PublicKey,
	inTokenMint solana.PublicKey,
	amountIn *big.Int,
	slippageBps uint64,
) (*GetQuoteResult, *Pool, error) {
	return SwapQuote(ctx, m.rpcClient, poolAddress, inTokenMint, amountIn, slippageBps)
}

func SwapQuote(
	ctx context.Context,
	rpcClient *rpc.Client,
	poolAddress solana.PublicKey,
	inTokenMint solana.PublicKey,
	amountIn *big.Int,
	slippageBps uint64,
) (*GetQuoteResult, *Pool, error) {
	poolState, err := GetPool(ctx, rpcClient, poolAddress)
	if err != nil {
		return nil, nil, err
	}

	quoteData, err := GetQuoteData(ctx, rpcClient, poolState)
	if err != nil {
		return nil, nil, err
	}

	result, err := ComputeQuote(inTokenMint, amountIn.Uint64(), *quoteData)
	if err != nil {
		return nil, nil, err
	}

	minSwapOutAmount := GetMinAmountWithSlippage(decimal.NewFromUint64(result.OutAmount), slippageBps)

	tokenAAmount, tokenBAmount, err := ComputePoolTokens(
		uint64(quoteData.Clock.UnixTimestamp),
		VaultInfo{LpAmount: quoteData.PoolVaultALpToken.Amount, LpSupply: quoteData.VaultALpMint.Supply, Vault: quoteData.VaultA},
		VaultInfo{LpAmount: quoteData.PoolVaultBLpToken.Amount, LpSupply: quoteData.VaultBLpMint.Supply, Vault: quoteData.VaultB},
	)
	if err != nil {
		return nil, nil, err
	}

	priceImpact, err := GetPriceImpact(
		decimal.NewFromBigInt(amountIn, 0),
		decimal.NewFromUint64(result.OutAmount),
		decimal.NewFromUint64(tokenAAmount),
		decimal.NewFromUint64(tokenBAmount),
		inTokenMint.Equals(poolState.TokenAMint),
	)
	if err != nil {
		return nil, nil, err
	}

	return &GetQuoteResult{
		SwapInAmount:     amountIn,
		SwapOutAmount:    new(big.Int).SetUint64(result.OutAmount),
		MinSwapOutAmount: minSwapOutAmount.BigInt(),
		TotalFee:         new(big.Int).SetUint64(result.Fee),
		PriceImpact:      priceImpact.BigFloat(),
	}, poolState, nil
}
