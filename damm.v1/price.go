package dammV1

import (
	"errors"

	"github.com/shopspring/decimal"
)

// GetMinAmountWithSlippage floors the quoted out amount by slippageBps.
func GetMinAmountWithSlippage(amount decimal.Decimal, slippageBps uint64) decimal.Decimal {
	if slippageBps > 0 {
		slippageFactor := decimal.NewFromInt(10000).Sub(decimal.NewFromUint64(slippageBps))
		denominator := decimal.NewFromInt(10000)
		return amount.Mul(slippageFactor).Div(denominator).Floor()
	}
	return amount
}

// GetPoolPrice returns the spot price of token A denominated in token B,
// derived from the virtual reserves after share conversion.
func GetPoolPrice(tokenAAmount, tokenBAmount decimal.Decimal) (decimal.Decimal, error) {
	if tokenAAmount.IsZero() {
		return decimal.Zero, errors.New("token a amount must be greater than 0")
	}
	return tokenBAmount.Div(tokenAAmount), nil
}

// GetPriceImpact returns the relative gap between the execution price and
// the spot price, in percent.
func GetPriceImpact(amountIn, amountOut, tokenAAmount, tokenBAmount decimal.Decimal, aToB bool) (decimal.Decimal, error) {
	if amountIn.IsZero() {
		return decimal.Zero, nil
	}
	if amountOut.IsZero() {
		return decimal.Zero, errors.New("amount out must be greater than 0")
	}
	spotPrice, err := GetPoolPrice(tokenAAmount, tokenBAmount)
	if err != nil {
		return decimal.Zero, err
	}
	executionPrice := amountOut.Div(amountIn)
	if !aToB {
		// B to A trades execute at the inverse price
		executionPrice = decimal.NewFromInt(1).Div(executionPrice)
	}
	priceImpact := executionPrice.Sub(spotPrice).Abs().Div(spotPrice).Mul(decimal.NewFromInt(100))
	return priceImpact, nil
}
