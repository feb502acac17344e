package dammV1

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGetMinAmountWithSlippage(t *testing.T) {
	out := GetMinAmountWithSlippage(decimal.NewFromInt(1_000), 250)
	require.True(t, out.Equal(decimal.NewFromInt(975)))

	// zero slippage passes through
	out = GetMinAmountWithSlippage(decimal.NewFromInt(1_000), 0)
	require.True(t, out.Equal(decimal.NewFromInt(1_000)))

	// floors
	out = GetMinAmountWithSlippage(decimal.NewFromInt(999), 1)
	require.True(t, out.Equal(decimal.NewFromInt(998)))
}

func TestGetPoolPrice(t *testing.T) {
	price, err := GetPoolPrice(decimal.NewFromInt(1_000_000), decimal.NewFromInt(2_000_000))
	require.NoError(t, err)
	require.True(t, price.Equal(decimal.NewFromInt(2)))

	_, err = GetPoolPrice(decimal.Zero, decimal.NewFromInt(1))
	require.Error(t, err)
}

func TestGetPriceImpact(t *testing.T) {
	// balanced pool, tiny trade executed exactly at spot: no impact
	impact, err := GetPriceImpact(
		decimal.NewFromInt(1_000),
		decimal.NewFromInt(1_000),
		decimal.NewFromInt(1_000_000),
		decimal.NewFromInt(1_000_000),
		true,
	)
	require.NoError(t, err)
	require.True(t, impact.IsZero())

	// 999 out for 1000 in on a balanced pool: 0.1% impact
	impact, err = GetPriceImpact(
		decimal.NewFromInt(1_000),
		decimal.NewFromInt(999),
		decimal.NewFromInt(1_000_000),
		decimal.NewFromInt(1_000_000),
		true,
	)
	require.NoError(t, err)
	require.True(t, impact.Equal(decimal.NewFromFloat(0.1)))

	// zero input short-circuits
	impact, err = GetPriceImpact(decimal.Zero, decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(1), true)
	require.NoError(t, err)
	require.True(t, impact.IsZero())

	// zero output is rejected
	_, err = GetPriceImpact(decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1), decimal.NewFromInt(1), true)
	require.Error(t, err)
}
