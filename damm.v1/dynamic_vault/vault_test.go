package dynamic_vault

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeteoraAg/damm-v1-sdk/math"
)

func testVault(totalAmount uint64, tracker LockedProfitTracker) *Vault {
	return &Vault{
		TotalAmount:         totalAmount,
		LockedProfitTracker: tracker,
	}
}

func TestGetUnlockedAmountNoLockedProfit(t *testing.T) {
	vault := testVault(1_000_000, LockedProfitTracker{})

	unlocked, err := vault.GetUnlockedAmount(1_700_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000_000), unlocked)
}

func TestGetUnlockedAmountLinearRelease(t *testing.T) {
	// 100 profit reported at t=0, releasing at 2e8/1e12 per second:
	// at t=2500 half of it is still locked.
	vault := testVault(1_000, LockedProfitTracker{
		LastUpdatedLockedProfit: 100,
		LastReport:              0,
		LockedProfitDegradation: 200_000_000,
	})

	unlocked, err := vault.GetUnlockedAmount(2_500)
	require.NoError(t, err)
	require.Equal(t, uint64(950), unlocked)

	// fully released once the ratio passes the denominator
	unlocked, err = vault.GetUnlockedAmount(10_000)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), unlocked)
}

func TestGetUnlockedAmountBeforeLastReport(t *testing.T) {
	vault := testVault(1_000, LockedProfitTracker{
		LastReport:              500,
		LockedProfitDegradation: 1,
	})

	_, err := vault.GetUnlockedAmount(499)
	require.ErrorIs(t, err, math.ErrMathUnderflow)
}

func TestGetAmountByShare(t *testing.T) {
	vault := testVault(1_000_000, LockedProfitTracker{})

	// identity vault: shares convert one to one
	amount, err := vault.GetAmountByShare(0, 250_000, 1_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(250_000), amount)

	// appreciated vault: each share is worth more than one token
	vault.TotalAmount = 2_000_000
	amount, err = vault.GetAmountByShare(0, 250_000, 1_000_000)
	require.NoError(t, err)
	require.Equal(t, uint64(500_000), amount)

	_, err = vault.GetAmountByShare(0, 1, 0)
	require.ErrorIs(t, err, math.ErrDivideByZero)
}

func TestDepositWithdrawNeverCreatesValue(t *testing.T) {
	vault := testVault(1_000_003, LockedProfitTracker{})
	lpSupply := uint64(999_999)

	for _, deposit := range []uint64{1, 999, 12_345, 1_000_000} {
		shares, err := vault.GetUnmintAmount(0, deposit, lpSupply)
		require.NoError(t, err)

		back, err := vault.GetAmountByShare(0, shares, lpSupply)
		require.NoError(t, err)
		require.LessOrEqual(t, back, deposit)
	}
}
