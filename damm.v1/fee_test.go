package dammV1

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_amm"
)

func feeCurvePool(curveType dynamic_amm.FeeCurveType, points ...dynamic_amm.FeeCurvePoint) *dynamic_amm.Pool {
	pool := &dynamic_amm.Pool{
		Fees: dynamic_amm.PoolFees{
			TradeFeeNumerator:           250,
			TradeFeeDenominator:         100_000,
			ProtocolTradeFeeNumerator:   20,
			ProtocolTradeFeeDenominator: 100,
		},
	}
	pool.FeeCurve.FeeCurveType = curveType
	copy(pool.FeeCurve.Points[:], points)
	return pool
}

func TestGetLatestPoolFeesNoCurve(t *testing.T) {
	pool := feeCurvePool(dynamic_amm.FeeCurveTypeNone)

	fees, err := GetLatestPoolFees(pool, 12_345)
	require.NoError(t, err)
	require.Equal(t, pool.Fees, fees)
}

func TestGetLatestPoolFeesUpdateCompleted(t *testing.T) {
	pool := feeCurvePool(dynamic_amm.FeeCurveTypeLinear,
		dynamic_amm.FeeCurvePoint{ActivatedPoint: 0, FeeBps: 100},
		dynamic_amm.FeeCurvePoint{ActivatedPoint: 100, FeeBps: 50},
	)
	pool.IsUpdateFeeCompleted = true

	fees, err := GetLatestPoolFees(pool, 50)
	require.NoError(t, err)
	require.Equal(t, pool.Fees, fees)
}

func TestGetLatestPoolFeesLinear(t *testing.T) {
	pool := feeCurvePool(dynamic_amm.FeeCurveTypeLinear,
		dynamic_amm.FeeCurvePoint{ActivatedPoint: 0, FeeBps: 100},
		dynamic_amm.FeeCurvePoint{ActivatedPoint: 100, FeeBps: 100},
		dynamic_amm.FeeCurvePoint{ActivatedPoint: 200, FeeBps: 50},
	)

	// midway between the second and third point: blend of 100 and 50
	fees, err := GetLatestPoolFees(pool, 150)
	require.NoError(t, err)
	require.Equal(t, uint64(750), fees.TradeFeeNumerator)

	// between the first two points both ends are 100 bps
	fees, err = GetLatestPoolFees(pool, 50)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), fees.TradeFeeNumerator)

	// past the last point the curve is fully elapsed
	fees, err = GetLatestPoolFees(pool, 250)
	require.NoError(t, err)
	require.Equal(t, uint64(500), fees.TradeFeeNumerator)

	// exactly at the first point
	fees, err = GetLatestPoolFees(pool, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), fees.TradeFeeNumerator)

	// static fields carried over unchanged
	require.Equal(t, pool.Fees.TradeFeeDenominator, fees.TradeFeeDenominator)
	require.Equal(t, pool.Fees.ProtocolTradeFeeNumerator, fees.ProtocolTradeFeeNumerator)
	require.Equal(t, pool.Fees.ProtocolTradeFeeDenominator, fees.ProtocolTradeFeeDenominator)
}

func TestGetLatestPoolFeesFlat(t *testing.T) {
	pool := feeCurvePool(dynamic_amm.FeeCurveTypeFlat,
		dynamic_amm.FeeCurvePoint{ActivatedPoint: 0, FeeBps: 100},
		dynamic_amm.FeeCurvePoint{ActivatedPoint: 200, FeeBps: 50},
	)

	// holds the previous point's fee until the next activation
	fees, err := GetLatestPoolFees(pool, 150)
	require.NoError(t, err)
	require.Equal(t, uint64(1_000), fees.TradeFeeNumerator)

	fees, err = GetLatestPoolFees(pool, 300)
	require.NoError(t, err)
	require.Equal(t, uint64(500), fees.TradeFeeNumerator)
}
