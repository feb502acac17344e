package dynamic_amm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MeteoraAg/damm-v1-sdk/math"
)

func TestConstantProductSwap(t *testing.T) {
	curve := ConstantProductCurve{}

	result, err := curve.Swap(1_000, 1_000_000, 1_000_000, TradeDirectionAtoB)
	require.NoError(t, err)
	require.Equal(t, uint64(999), result.DestinationAmountSwapped)
	require.Equal(t, uint64(1_000), result.SourceAmountSwapped)
}

func TestConstantProductSwapEmptyDestination(t *testing.T) {
	curve := ConstantProductCurve{}

	_, err := curve.Swap(1_000, 1_000_000, 0, TradeDirectionAtoB)
	require.ErrorIs(t, err, ErrReserveExceeded)
}

func TestConstantProductSwapMonotonic(t *testing.T) {
	curve := ConstantProductCurve{}

	var prevOut uint64
	for in := uint64(1_000); in <= 100_000; in += 1_000 {
		result, err := curve.Swap(in, 1_000_000, 1_000_000, TradeDirectionAtoB)
		require.NoError(t, err)
		require.GreaterOrEqual(t, result.DestinationAmountSwapped, prevOut)
		require.Less(t, result.DestinationAmountSwapped, uint64(1_000_000))
		prevOut = result.DestinationAmountSwapped
	}
}

func stableCurve(amp uint64) StableSwapCurve {
	return StableSwapCurve{
		Params: StableParams{
			Amp: amp,
			TokenMultiplier: TokenMultiplier{
				TokenAMultiplier: 1,
				TokenBMultiplier: 1,
				PrecisionFactor:  0,
			},
		},
	}
}

func TestStableSwapBalancedPool(t *testing.T) {
	curve := stableCurve(100)

	result, err := curve.Swap(1_000, 1_000_000, 1_000_000, TradeDirectionAtoB)
	require.NoError(t, err)

	// near-peg trades execute close to 1:1, and strictly better than the
	// constant product curve on the same reserves
	require.Less(t, result.DestinationAmountSwapped, uint64(1_001))
	require.GreaterOrEqual(t, result.DestinationAmountSwapped, uint64(995))

	cpResult, err := ConstantProductCurve{}.Swap(1_000, 1_000_000, 1_000_000, TradeDirectionAtoB)
	require.NoError(t, err)
	require.GreaterOrEqual(t, result.DestinationAmountSwapped, cpResult.DestinationAmountSwapped)
}

func TestStableSwapDirectionSymmetry(t *testing.T) {
	curve := stableCurve(60)

	aToB, err := curve.Swap(5_000, 2_000_000, 2_000_000, TradeDirectionAtoB)
	require.NoError(t, err)
	bToA, err := curve.Swap(5_000, 2_000_000, 2_000_000, TradeDirectionBtoA)
	require.NoError(t, err)
	require.Equal(t, aToB.DestinationAmountSwapped, bToA.DestinationAmountSwapped)
}

func TestStableSwapTokenMultiplier(t *testing.T) {
	// token A has 6 decimals, token B has 9: multipliers normalize both
	// sides to the same scale
	curve := StableSwapCurve{
		Params: StableParams{
			Amp: 100,
			TokenMultiplier: TokenMultiplier{
				TokenAMultiplier: 1_000,
				TokenBMultiplier: 1,
				PrecisionFactor:  3,
			},
		},
	}

	result, err := curve.Swap(1_000, 1_000_000, 1_000_000_000, TradeDirectionAtoB)
	require.NoError(t, err)

	// 1000 of the 6-decimal token is 1_000_000 base units of the 9-decimal
	// token at peg
	require.Less(t, result.DestinationAmountSwapped, uint64(1_000_001))
	require.GreaterOrEqual(t, result.DestinationAmountSwapped, uint64(995_000))
}

func TestStableSwapDepegVirtualPrice(t *testing.T) {
	// token A is a staking derivative worth 2x its underlying
	curve := StableSwapCurve{
		Params: StableParams{
			Amp: 100,
			TokenMultiplier: TokenMultiplier{
				TokenAMultiplier: 1,
				TokenBMultiplier: 1,
				PrecisionFactor:  0,
			},
			Depeg: Depeg{
				BaseVirtualPrice: 2 * DepegPrecision,
				DepegType:        DepegTypeSplStake,
			},
		},
	}

	// 1_000_000 A scales to 2_000_000, balancing the B side
	result, err := curve.Swap(1_000, 1_000_000, 2_000_000, TradeDirectionBtoA)
	require.NoError(t, err)

	// selling 1000 underlying buys about half as many derivative tokens
	require.Less(t, result.DestinationAmountSwapped, uint64(501))
	require.GreaterOrEqual(t, result.DestinationAmountSwapped, uint64(490))
}

func TestStableSwapZeroReserve(t *testing.T) {
	curve := stableCurve(100)

	_, err := curve.Swap(1_000, 0, 1_000_000, TradeDirectionAtoB)
	require.ErrorIs(t, err, math.ErrDivideByZero)
}

func TestCurveTypeSwapCurve(t *testing.T) {
	cp := CurveType{Kind: CurveKindConstantProduct}
	curve, err := cp.SwapCurve()
	require.NoError(t, err)
	require.IsType(t, ConstantProductCurve{}, curve)

	stable := CurveType{Kind: CurveKindStable, Stable: StableParams{Amp: 100}}
	curve, err = stable.SwapCurve()
	require.NoError(t, err)
	require.IsType(t, StableSwapCurve{}, curve)

	bad := CurveType{Kind: CurveKind(9)}
	_, err = bad.SwapCurve()
	require.ErrorIs(t, err, ErrUnsupportedCurve)
}
