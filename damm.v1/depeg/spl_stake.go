package depeg

import (
	"fmt"
	"math/big"

	binary "github.com/gagliardetto/binary"

	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_amm"
	"github.com/MeteoraAg/damm-v1-sdk/math"
)

// Fee is an SPL stake pool fee fraction.
type Fee struct {
	Denominator uint64
	Numerator   uint64
}

// StakePool is the subset of the SPL stake pool account needed to price a
// staking derivative: total staked lamports, pool token supply, and the SOL
// withdrawal fee. The account is walked sequentially because optional fields
// before the withdrawal fee make fixed offsets impossible.
type StakePool struct {
	TotalLamports    uint64
	PoolTokenSupply  uint64
	SolWithdrawalFee Fee
}

func readFee(decoder *binary.Decoder) (Fee, error) {
	denominator, err := decoder.ReadUint64(binary.LE)
	if err != nil {
		return Fee{}, err
	}
	numerator, err := decoder.ReadUint64(binary.LE)
	if err != nil {
		return Fee{}, err
	}
	return Fee{Denominator: denominator, Numerator: numerator}, nil
}

// skipOptional consumes a borsh Option tag plus size payload bytes when set.
func skipOptional(decoder *binary.Decoder, size int) error {
	tag, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	if tag == 0 {
		return nil
	}
	_, err = decoder.ReadNBytes(size)
	return err
}

// skipFutureEpoch consumes a FutureEpoch<Fee> enum (None / One / Two).
func skipFutureEpoch(decoder *binary.Decoder) error {
	tag, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	if tag == 0 {
		return nil
	}
	if tag > 2 {
		return fmt.Errorf("invalid future epoch tag %d", tag)
	}
	_, err = readFee(decoder)
	return err
}

// DecodeStakePool walks the SPL stake pool borsh layout up to the SOL
// withdrawal fee.
func DecodeStakePool(data []byte) (*StakePool, error) {
	decoder := binary.NewBorshDecoder(data)

	// account type, manager, staker, stake deposit authority
	if _, err := decoder.ReadNBytes(1 + 32 + 32 + 32); err != nil {
		return nil, err
	}
	// stake withdraw bump, validator list, reserve stake, pool mint,
	// manager fee account, token program
	if _, err := decoder.ReadNBytes(1 + 32 + 32 + 32 + 32 + 32); err != nil {
		return nil, err
	}

	stake := &StakePool{}
	var err error
	if stake.TotalLamports, err = decoder.ReadUint64(binary.LE); err != nil {
		return nil, err
	}
	if stake.PoolTokenSupply, err = decoder.ReadUint64(binary.LE); err != nil {
		return nil, err
	}

	// last update epoch, lockup (timestamp, epoch, custodian), epoch fee
	if _, err = decoder.ReadNBytes(8 + 8 + 8 + 32 + 16); err != nil {
		return nil, err
	}
	if err = skipFutureEpoch(decoder); err != nil { // next epoch fee
		return nil, err
	}
	if err = skipOptional(decoder, 32); err != nil { // preferred deposit validator
		return nil, err
	}
	if err = skipOptional(decoder, 32); err != nil { // preferred withdraw validator
		return nil, err
	}
	// stake deposit fee, stake withdrawal fee
	if _, err = decoder.ReadNBytes(16 + 16); err != nil {
		return nil, err
	}
	if err = skipFutureEpoch(decoder); err != nil { // next stake withdrawal fee
		return nil, err
	}
	if _, err = decoder.ReadNBytes(1); err != nil { // stake referral fee
		return nil, err
	}
	if err = skipOptional(decoder, 32); err != nil { // sol deposit authority
		return nil, err
	}
	if _, err = decoder.ReadNBytes(16 + 1); err != nil { // sol deposit fee, sol referral fee
		return nil, err
	}
	if err = skipOptional(decoder, 32); err != nil { // sol withdraw authority
		return nil, err
	}
	if stake.SolWithdrawalFee, err = readFee(decoder); err != nil {
		return nil, err
	}
	return stake, nil
}

// GetVirtualPrice computes the stake pool's exchange rate scaled by
// DepegPrecision, blending the deposit price with the withdrawal price at a
// 3:1 weight since deposits are the common case. A withdrawal fee of 10% or
// more is treated as implausible state and the deposit price is returned
// unadjusted.
func GetVirtualPrice(data []byte) (uint64, error) {
	stake, err := DecodeStakePool(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidStakeAccount, err)
	}

	totalLamports := math.U64(stake.TotalLamports)
	poolTokenSupply := math.U64(stake.PoolTokenSupply)
	precision := math.U64(dynamic_amm.DepegPrecision)

	depositPrice, err := math.BigMulDiv(totalLamports, precision, poolTokenSupply)
	if err != nil {
		return 0, err
	}

	feeDenominator := math.U64(stake.SolWithdrawalFee.Denominator)
	feeNumerator := math.U64(stake.SolWithdrawalFee.Numerator)

	if feeDenominator.Cmp(new(big.Int).Mul(feeNumerator, big.NewInt(10))) <= 0 {
		return math.ToU64(depositPrice)
	}

	withdrawNumerator := new(big.Int).Mul(totalLamports, new(big.Int).Sub(feeDenominator, feeNumerator))
	withdrawNumerator.Mul(withdrawNumerator, precision)
	withdrawPrice, err := math.BigMulDiv(withdrawNumerator, big.NewInt(1), new(big.Int).Mul(feeDenominator, poolTokenSupply))
	if err != nil {
		return 0, err
	}

	virtualPrice := new(big.Int).Mul(depositPrice, big.NewInt(3))
	virtualPrice.Add(virtualPrice, withdrawPrice)
	virtualPrice.Div(virtualPrice, big.NewInt(4))
	return math.ToU64(virtualPrice)
}
