package dynamic_vault

import (
	"fmt"
	"math/big"

	"github.com/MeteoraAg/damm-v1-sdk/math"
)

// calculateLockedProfit returns the portion of the last reported profit that
// is still locked at currentTime. Profit unlocks linearly at
// LockedProfitDegradation per second until fully released.
func (v *Vault) calculateLockedProfit(currentTime uint64) (uint64, error) {
	duration, err := math.CheckedSub(currentTime, v.LockedProfitTracker.LastReport)
	if err != nil {
		return 0, fmt.Errorf("locked profit duration: %w", err)
	}

	lockedFundRatio := new(big.Int).Mul(
		math.U64(duration),
		math.U64(v.LockedProfitTracker.LockedProfitDegradation),
	)
	denominator := math.U64(LockedProfitDegradationDenominator)
	if lockedFundRatio.Cmp(denominator) > 0 {
		return 0, nil
	}

	lockedProfit, err := math.BigMulDiv(
		math.U64(v.LockedProfitTracker.LastUpdatedLockedProfit),
		new(big.Int).Sub(denominator, lockedFundRatio),
		denominator,
	)
	if err != nil {
		return 0, err
	}
	return math.ToU64(lockedProfit)
}

// GetUnlockedAmount returns the vault's total value with future-dated profit
// excluded. This is the divisor basis for every share conversion.
func (v *Vault) GetUnlockedAmount(currentTime uint64) (uint64, error) {
	lockedProfit, err := v.calculateLockedProfit(currentTime)
	if err != nil {
		return 0, err
	}
	return math.CheckedSub(v.TotalAmount, lockedProfit)
}

// GetAmountByShare converts vault LP shares into the underlying token amount
// at currentTime, rounding down.
func (v *Vault) GetAmountByShare(currentTime, share, totalSupply uint64) (uint64, error) {
	unlockedAmount, err := v.GetUnlockedAmount(currentTime)
	if err != nil {
		return 0, err
	}
	return math.MulDiv(share, unlockedAmount, totalSupply)
}

// GetUnmintAmount previews the LP shares minted by depositing outToken
// underlying tokens at currentTime, rounding down. Depositing then
// immediately withdrawing never yields more than the deposit.
func (v *Vault) GetUnmintAmount(currentTime, outToken, totalSupply uint64) (uint64, error) {
	unlockedAmount, err := v.GetUnlockedAmount(currentTime)
	if err != nil {
		return 0, err
	}
	return math.MulDiv(outToken, totalSupply, unlockedAmount)
}
