package dammV1

import (
	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_amm"
	"github.com/MeteoraAg/damm-v1-sdk/math"
)

// GetLatestPoolFees resolves the fee setting in force at currentPoint. Pools
// without a fee curve, and pools whose scheduled transition already
// completed, charge their stored fees. Otherwise the trade fee bps is looked
// up on the curve: flat curves hold the previous point's fee until the next
// point activates, linear curves interpolate between the two neighbouring
// points. Past the last point the last fee applies. Protocol fee settings are
// never scheduled and carry over unchanged.
func GetLatestPoolFees(state *dynamic_amm.Pool, currentPoint uint64) (dynamic_amm.PoolFees, error) {
	if state.FeeCurve.FeeCurveType == dynamic_amm.FeeCurveTypeNone || state.IsUpdateFeeCompleted {
		return state.Fees, nil
	}

	points := state.FeeCurve.Points

	// Control points are sorted by activation point; trailing zeroed slots
	// of the fixed array are padding, not points.
	pointCount := 1
	for pointCount < dynamic_amm.FeeCurvePointNumber && points[pointCount].ActivatedPoint > points[pointCount-1].ActivatedPoint {
		pointCount++
	}

	getLatestTradeBps := func() uint16 {
		for i := 0; i < pointCount; i++ {
			// currentPoint is between point i-1 and point i
			if points[i].ActivatedPoint >= currentPoint {
				if i == 0 {
					return points[i].FeeBps
				}
				if state.FeeCurve.FeeCurveType == dynamic_amm.FeeCurveTypeFlat {
					return points[i-1].FeeBps
				}

				m := uint64(points[i-1].FeeBps)
				n := uint64(points[i].FeeBps)
				a := points[i-1].ActivatedPoint
				b := points[i].ActivatedPoint

				denominator := b - a
				if denominator == 0 {
					return uint16(m)
				}
				numerator := n*(currentPoint-a) + m*(b-currentPoint)
				return uint16(numerator / denominator)
			}
		}
		// curve fully elapsed
		return points[pointCount-1].FeeBps
	}

	tradeFeeNumerator, err := math.CheckedMul(uint64(getLatestTradeBps()), dynamic_amm.FeeCurveBpsScale)
	if err != nil {
		return dynamic_amm.PoolFees{}, err
	}

	return dynamic_amm.PoolFees{
		TradeFeeNumerator:           tradeFeeNumerator,
		TradeFeeDenominator:         state.Fees.TradeFeeDenominator,
		ProtocolTradeFeeNumerator:   state.Fees.ProtocolTradeFeeNumerator,
		ProtocolTradeFeeDenominator: state.Fees.ProtocolTradeFeeDenominator,
	}, nil
}
