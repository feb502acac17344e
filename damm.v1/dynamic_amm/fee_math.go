package dynamic_amm

import (
	"github.com/MeteoraAg/damm-v1-sdk/math"
)

// TradingFee returns the trade fee charged on amount, rounding down.
func (f *PoolFees) TradingFee(amount uint64) (uint64, error) {
	if f.TradeFeeNumerator == 0 || amount == 0 {
		return 0, nil
	}
	return math.MulDiv(amount, f.TradeFeeNumerator, f.TradeFeeDenominator)
}

// ProtocolTradingFee returns the protocol cut of an already computed trade
// fee, rounding down.
func (f *PoolFees) ProtocolTradingFee(tradeFee uint64) (uint64, error) {
	if f.ProtocolTradeFeeNumerator == 0 || tradeFee == 0 {
		return 0, nil
	}
	return math.MulDiv(tradeFee, f.ProtocolTradeFeeNumerator, f.ProtocolTradeFeeDenominator)
}
