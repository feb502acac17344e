package depeg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_amm"
)

func stableDepegCurve(depegType dynamic_amm.DepegType, baseVirtualPrice, baseCacheUpdated uint64) dynamic_amm.CurveType {
	return dynamic_amm.CurveType{
		Kind: dynamic_amm.CurveKindStable,
		Stable: dynamic_amm.StableParams{
			Amp: 100,
			Depeg: dynamic_amm.Depeg{
				BaseVirtualPrice: baseVirtualPrice,
				BaseCacheUpdated: baseCacheUpdated,
				DepegType:        depegType,
			},
		},
	}
}

func TestUpdateBaseVirtualPriceSplStake(t *testing.T) {
	curve := stableDepegCurve(dynamic_amm.DepegTypeSplStake, 1_000_000, 0)
	data := buildStakePool(1_000_000, 900_000, Fee{Denominator: 1_000, Numerator: 1})

	require.NoError(t, UpdateBaseVirtualPrice(&curve, data, 5_000))
	require.Equal(t, uint64(1_110_833), curve.Stable.Depeg.BaseVirtualPrice)
	require.Equal(t, uint64(5_000), curve.Stable.Depeg.BaseCacheUpdated)
}

func TestUpdateBaseVirtualPriceSplStakeMissingData(t *testing.T) {
	// cached price still fresh: kept as is
	curve := stableDepegCurve(dynamic_amm.DepegTypeSplStake, 1_050_000, 10_000)
	require.NoError(t, UpdateBaseVirtualPrice(&curve, nil, 10_100))
	require.Equal(t, uint64(1_050_000), curve.Stable.Depeg.BaseVirtualPrice)

	// cache expired and nothing to refresh from
	curve = stableDepegCurve(dynamic_amm.DepegTypeSplStake, 1_050_000, 0)
	require.ErrorIs(t, UpdateBaseVirtualPrice(&curve, nil, 10_000), ErrStalePrice)
}

func TestUpdateBaseVirtualPriceDecodeFallback(t *testing.T) {
	// malformed stake data with a fresh cache: fall back silently
	curve := stableDepegCurve(dynamic_amm.DepegTypeSplStake, 1_050_000, 10_000)
	require.NoError(t, UpdateBaseVirtualPrice(&curve, []byte{1, 2, 3}, 10_100))
	require.Equal(t, uint64(1_050_000), curve.Stable.Depeg.BaseVirtualPrice)

	// malformed stake data with an expired cache is fatal
	curve = stableDepegCurve(dynamic_amm.DepegTypeSplStake, 1_050_000, 0)
	require.ErrorIs(t, UpdateBaseVirtualPrice(&curve, []byte{1, 2, 3}, 10_000), ErrInvalidStakeAccount)
}

func TestUpdateBaseVirtualPriceCachedOnlySources(t *testing.T) {
	curve := stableDepegCurve(dynamic_amm.DepegTypeMarinade, 1_080_000, 10_000)
	require.NoError(t, UpdateBaseVirtualPrice(&curve, nil, 10_100))
	require.Equal(t, uint64(1_080_000), curve.Stable.Depeg.BaseVirtualPrice)

	curve = stableDepegCurve(dynamic_amm.DepegTypeLido, 1_080_000, 0)
	require.ErrorIs(t, UpdateBaseVirtualPrice(&curve, nil, 10_000), ErrStalePrice)
}

func TestUpdateBaseVirtualPriceNonDepeg(t *testing.T) {
	curve := dynamic_amm.CurveType{Kind: dynamic_amm.CurveKindConstantProduct}
	require.NoError(t, UpdateBaseVirtualPrice(&curve, nil, 0))

	curve = stableDepegCurve(dynamic_amm.DepegTypeNone, 0, 0)
	require.NoError(t, UpdateBaseVirtualPrice(&curve, nil, 0))
}
