// Package depeg maintains the virtual price of yield-bearing base tokens in
// stable pools. The price is cached on chain and refreshed here from the
// staking program's own account data before quoting.
package depeg

import (
	"errors"

	"github.com/MeteoraAg/damm-v1-sdk/damm.v1/dynamic_amm"
)

var (
	// ErrInvalidStakeAccount is returned when the stake account cannot be decoded.
	ErrInvalidStakeAccount = errors.New("invalid stake pool account")
	// ErrStalePrice is returned when the cached virtual price expired and no
	// stake data is available to refresh it.
	ErrStalePrice = errors.New("base virtual price is stale")
)

// IsBaseVirtualPriceExpired reports whether the cached virtual price is older
// than the cache window.
func IsBaseVirtualPriceExpired(depeg dynamic_amm.Depeg, currentTime uint64) bool {
	return currentTime > depeg.BaseCacheUpdated+dynamic_amm.BaseCacheExpires
}

// UpdateBaseVirtualPrice refreshes the virtual price of a depeg stable curve
// in place. Pools without a depeg configuration pass through untouched. SPL
// stake pools are repriced from the stake account; Marinade and Lido expose
// no account layout here, so their cached price is reused as long as it has
// not expired.
func UpdateBaseVirtualPrice(curve *dynamic_amm.CurveType, stakeData []byte, currentTime uint64) error {
	if curve.Kind != dynamic_amm.CurveKindStable {
		return nil
	}
	stable := &curve.Stable
	switch stable.Depeg.DepegType {
	case dynamic_amm.DepegTypeNone:
		return nil
	case dynamic_amm.DepegTypeSplStake:
		if len(stakeData) == 0 {
			if IsBaseVirtualPriceExpired(stable.Depeg, currentTime) {
				return ErrStalePrice
			}
			return nil
		}
		virtualPrice, err := GetVirtualPrice(stakeData)
		if err != nil {
			// fall back to the cached price while it is still fresh
			if !IsBaseVirtualPriceExpired(stable.Depeg, currentTime) {
				return nil
			}
			return err
		}
		stable.Depeg.BaseVirtualPrice = virtualPrice
		stable.Depeg.BaseCacheUpdated = currentTime
		return nil
	case dynamic_amm.DepegTypeMarinade, dynamic_amm.DepegTypeLido:
		if IsBaseVirtualPriceExpired(stable.Depeg, currentTime) {
			return ErrStalePrice
		}
		return nil
	default:
		return ErrInvalidStakeAccount
	}
}
