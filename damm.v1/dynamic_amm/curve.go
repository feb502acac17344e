package dynamic_amm

import (
	"fmt"
	"math/big"

	"github.com/MeteoraAg/damm-v1-sdk/math"
)

// TradeDirection selects which pool token is the swap input.
type TradeDirection uint8

const (
	TradeDirectionAtoB TradeDirection = 0
	TradeDirectionBtoA TradeDirection = 1
)

// SwapResult is the outcome of a curve-level swap computation. Amounts are
// token denominated and pre vault-share settlement.
type SwapResult struct {
	SourceAmountSwapped      uint64
	DestinationAmountSwapped uint64
}

// SwapCurve is the closed set of invariant curves a pool can be configured
// with. Swap computes the destination amount for sourceAmount given the
// current in/out reserves; it never returns an amount reaching the
// destination reserve and is non-decreasing in sourceAmount.
type SwapCurve interface {
	Swap(sourceAmount, swapSourceAmount, swapDestinationAmount uint64, tradeDirection TradeDirection) (*SwapResult, error)
}

// SwapCurve returns the curve implementation for this configuration.
func (c CurveType) SwapCurve() (SwapCurve, error) {
	switch c.Kind {
	case CurveKindConstantProduct:
		return ConstantProductCurve{}, nil
	case CurveKindStable:
		return StableSwapCurve{Params: c.Stable}, nil
	default:
		return nil, fmt.Errorf("%w: tag %d", ErrUnsupportedCurve, c.Kind)
	}
}

// ConstantProductCurve implements the x*y=k invariant.
type ConstantProductCurve struct{}

func (ConstantProductCurve) Swap(sourceAmount, swapSourceAmount, swapDestinationAmount uint64, _ TradeDirection) (*SwapResult, error) {
	newSourceAmount, err := math.CheckedAdd(swapSourceAmount, sourceAmount)
	if err != nil {
		return nil, err
	}
	destinationAmountSwapped, err := math.MulDiv(swapDestinationAmount, sourceAmount, newSourceAmount)
	if err != nil {
		return nil, err
	}
	if destinationAmountSwapped >= swapDestinationAmount {
		return nil, ErrReserveExceeded
	}
	return &SwapResult{
		SourceAmountSwapped:      sourceAmount,
		DestinationAmountSwapped: destinationAmountSwapped,
	}, nil
}

// StableSwapCurve implements the amplified constant-sum/constant-product
// hybrid invariant over decimal-normalized balances. For depeg pools the
// token A balance is additionally scaled by the current virtual price, so
// the curve prices the staking derivative at its underlying value.
type StableSwapCurve struct {
	Params StableParams
}

// nCoins is fixed: dynamic AMM pools are always two-token.
const nCoins = 2

func (s StableSwapCurve) ann() *big.Int {
	// ANN = amp * n^n
	return new(big.Int).Mul(math.U64(s.Params.Amp), big.NewInt(nCoins*nCoins))
}

func (s StableSwapCurve) depegActive() bool {
	return s.Params.Depeg.DepegType != DepegTypeNone
}

// upscale normalizes a raw token amount into the invariant domain.
func (s StableSwapCurve) upscale(amount uint64, isTokenA bool) (*big.Int, error) {
	multiplier := s.Params.TokenMultiplier.TokenBMultiplier
	if isTokenA {
		multiplier = s.Params.TokenMultiplier.TokenAMultiplier
	}
	out := new(big.Int).Mul(math.U64(amount), math.U64(multiplier))
	if isTokenA && s.depegActive() {
		return math.BigMulDiv(out, math.U64(s.Params.Depeg.BaseVirtualPrice), math.U64(DepegPrecision))
	}
	return out, nil
}

// downscale converts an invariant-domain amount back into raw tokens,
// rounding down so the pool absorbs the loss.
func (s StableSwapCurve) downscale(amount *big.Int, isTokenA bool) (uint64, error) {
	multiplier := s.Params.TokenMultiplier.TokenBMultiplier
	if isTokenA {
		multiplier = s.Params.TokenMultiplier.TokenAMultiplier
	}
	out := amount
	if isTokenA && s.depegActive() {
		var err error
		out, err = math.BigMulDiv(out, math.U64(DepegPrecision), math.U64(s.Params.Depeg.BaseVirtualPrice))
		if err != nil {
			return 0, err
		}
	}
	if multiplier == 0 {
		return 0, math.ErrDivideByZero
	}
	return math.ToU64(new(big.Int).Div(out, math.U64(multiplier)))
}

// computeD solves the invariant D for the normalized balances by Newton
// iteration. Non-convergence within the iteration budget is fatal.
func (s StableSwapCurve) computeD(x, y *big.Int) (*big.Int, error) {
	sum := new(big.Int).Add(x, y)
	if sum.Sign() == 0 {
		return big.NewInt(0), nil
	}
	if x.Sign() == 0 || y.Sign() == 0 {
		return nil, math.ErrDivideByZero
	}

	ann := s.ann()
	tolerance := math.U64(CurvePrecision)
	d := new(big.Int).Set(sum)
	for i := 0; i < CurveMaxIterations; i++ {
		// dP = D^(n+1) / (n^n * x * y)
		dP := new(big.Int).Set(d)
		dP.Mul(dP, d).Div(dP, new(big.Int).Mul(x, big.NewInt(nCoins)))
		dP.Mul(dP, d).Div(dP, new(big.Int).Mul(y, big.NewInt(nCoins)))

		dPrev := new(big.Int).Set(d)

		// D = (ANN*S + n*dP) * D / ((ANN-1)*D + (n+1)*dP)
		numerator := new(big.Int).Mul(ann, sum)
		numerator.Add(numerator, new(big.Int).Mul(dP, big.NewInt(nCoins)))
		numerator.Mul(numerator, d)

		denominator := new(big.Int).Sub(ann, big.NewInt(1))
		denominator.Mul(denominator, d)
		denominator.Add(denominator, new(big.Int).Mul(dP, big.NewInt(nCoins+1)))

		d.Div(numerator, denominator)

		if math.AbsDiff(d, dPrev).Cmp(tolerance) <= 0 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("%w: invariant solve", ErrConvergenceFailure)
}

// computeY solves the destination balance that keeps the invariant D after
// the source balance moved to newX.
func (s StableSwapCurve) computeY(newX, d *big.Int) (*big.Int, error) {
	if newX.Sign() == 0 {
		return nil, math.ErrDivideByZero
	}

	ann := s.ann()
	tolerance := math.U64(CurvePrecision)

	// c = D^(n+1) / (n^n * newX * ANN)
	c := new(big.Int).Set(d)
	c.Mul(c, d).Div(c, new(big.Int).Mul(newX, big.NewInt(nCoins)))
	c.Mul(c, d).Div(c, new(big.Int).Mul(ann, big.NewInt(nCoins)))

	// b = newX + D/ANN
	b := new(big.Int).Div(d, ann)
	b.Add(b, newX)

	y := new(big.Int).Set(d)
	for i := 0; i < CurveMaxIterations; i++ {
		yPrev := new(big.Int).Set(y)

		// y = (y^2 + c) / (2y + b - D)
		numerator := new(big.Int).Mul(y, y)
		numerator.Add(numerator, c)

		denominator := new(big.Int).Lsh(y, 1)
		denominator.Add(denominator, b)
		denominator.Sub(denominator, d)
		if denominator.Sign() <= 0 {
			return nil, math.ErrDivideByZero
		}

		y.Div(numerator, denominator)

		if math.AbsDiff(y, yPrev).Cmp(tolerance) <= 0 {
			return y, nil
		}
	}
	return nil, fmt.Errorf("%w: balance solve", ErrConvergenceFailure)
}

func (s StableSwapCurve) Swap(sourceAmount, swapSourceAmount, swapDestinationAmount uint64, tradeDirection TradeDirection) (*SwapResult, error) {
	sourceIsA := tradeDirection == TradeDirectionAtoB

	scaledSource, err := s.upscale(sourceAmount, sourceIsA)
	if err != nil {
		return nil, err
	}
	scaledSwapSource, err := s.upscale(swapSourceAmount, sourceIsA)
	if err != nil {
		return nil, err
	}
	scaledSwapDestination, err := s.upscale(swapDestinationAmount, !sourceIsA)
	if err != nil {
		return nil, err
	}

	d, err := s.computeD(scaledSwapSource, scaledSwapDestination)
	if err != nil {
		return nil, err
	}

	newSource := new(big.Int).Add(scaledSwapSource, scaledSource)
	newDestination, err := s.computeY(newSource, d)
	if err != nil {
		return nil, err
	}
	if newDestination.Cmp(scaledSwapDestination) > 0 {
		return nil, math.ErrMathUnderflow
	}

	scaledOut := new(big.Int).Sub(scaledSwapDestination, newDestination)
	destinationAmountSwapped, err := s.downscale(scaledOut, !sourceIsA)
	if err != nil {
		return nil, err
	}
	if destinationAmountSwapped >= swapDestinationAmount {
		return nil, ErrReserveExceeded
	}
	return &SwapResult{
		SourceAmountSwapped:      sourceAmount,
		DestinationAmountSwapped: destinationAmountSwapped,
	}, nil
}
