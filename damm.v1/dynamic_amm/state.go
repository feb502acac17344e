package dynamic_amm

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// PoolType of a pool account.
type PoolType uint8

const (
	PoolTypePermissioned   PoolType = 0
	PoolTypePermissionless PoolType = 1
)

// ActivationType selects the clock domain of a pool's activation point.
type ActivationType uint8

const (
	ActivationTypeSlot      ActivationType = 0
	ActivationTypeTimestamp ActivationType = 1
)

// FeeCurveType selects how the fee curve is evaluated between points.
type FeeCurveType uint8

const (
	FeeCurveTypeNone   FeeCurveType = 0
	FeeCurveTypeFlat   FeeCurveType = 1
	FeeCurveTypeLinear FeeCurveType = 2
)

// DepegType identifies the staking derivative backing a depeg pool.
type DepegType uint8

const (
	DepegTypeNone     DepegType = 0
	DepegTypeMarinade DepegType = 1
	DepegTypeLido     DepegType = 2
	DepegTypeSplStake DepegType = 3
)

// PoolFees stores the two-tier fee setting. The protocol fee is a cut taken
// out of the trade fee, not added on top of it.
type PoolFees struct {
	TradeFeeNumerator           uint64
	TradeFeeDenominator         uint64
	ProtocolTradeFeeNumerator   uint64
	ProtocolTradeFeeDenominator uint64
}

// FeeCurvePoint is one control point of a scheduled fee transition.
type FeeCurvePoint struct {
	ActivatedPoint uint64
	FeeBps         uint16
}

// FeeCurve schedules the trade fee across activation points.
type FeeCurve struct {
	FeeCurveType FeeCurveType
	Points       [FeeCurvePointNumber]FeeCurvePoint
}

// Bootstrapping gates trading until the pool's activation point.
type Bootstrapping struct {
	ActivationPoint  uint64
	WhitelistedVault solana.PublicKey
	PoolCreator      solana.PublicKey
	ActivationType   ActivationType
}

// TokenMultiplier normalizes both token amounts to a common decimal scale
// before the stable invariant is applied.
type TokenMultiplier struct {
	TokenAMultiplier uint64
	TokenBMultiplier uint64
	PrecisionFactor  uint8
}

// Depeg carries the virtual-price basis of a staking-derivative pool. The
// stored BaseVirtualPrice is a cache; it expires BaseCacheExpires seconds
// after BaseCacheUpdated.
type Depeg struct {
	BaseVirtualPrice uint64
	BaseCacheUpdated uint64
	DepegType        DepegType
}

// StableParams are the parameters of the stable swap variant.
type StableParams struct {
	Amp                     uint64
	TokenMultiplier         TokenMultiplier
	Depeg                   Depeg
	LastAmpUpdatedTimestamp uint64
}

// CurveKind tags the swap curve variant.
type CurveKind uint8

const (
	CurveKindConstantProduct CurveKind = 0
	CurveKindStable          CurveKind = 1
)

// CurveType is the tagged swap-curve configuration stored on the pool.
// Stable is meaningful only when Kind is CurveKindStable.
type CurveType struct {
	Kind   CurveKind
	Stable StableParams
}

// UnmarshalWithDecoder decodes the borsh enum representation.
func (c *CurveType) UnmarshalWithDecoder(decoder *binary.Decoder) error {
	tag, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	c.Kind = CurveKind(tag)
	switch c.Kind {
	case CurveKindConstantProduct:
		return nil
	case CurveKindStable:
		return decoder.Decode(&c.Stable)
	default:
		return fmt.Errorf("unknown curve type tag %d", tag)
	}
}

// MarshalWithEncoder encodes the borsh enum representation.
func (c CurveType) MarshalWithEncoder(encoder *binary.Encoder) error {
	if err := encoder.WriteUint8(uint8(c.Kind)); err != nil {
		return err
	}
	if c.Kind == CurveKindStable {
		return encoder.Encode(c.Stable)
	}
	return nil
}

// Padding reserves space for future pool fields.
type Padding struct {
	Padding0 [7]uint8
	Padding1 [10]binary.Uint128
}

// Pool is the dynamic AMM pool account state.
type Pool struct {
	LpMint               solana.PublicKey
	TokenAMint           solana.PublicKey
	TokenBMint           solana.PublicKey
	AVault               solana.PublicKey
	BVault               solana.PublicKey
	AVaultLp             solana.PublicKey
	BVaultLp             solana.PublicKey
	AVaultLpBump         uint8
	Enabled              bool
	AdminTokenAFee       solana.PublicKey
	AdminTokenBFee       solana.PublicKey
	Admin                solana.PublicKey
	Fees                 PoolFees
	PoolType             PoolType
	Stake                solana.PublicKey
	TotalLockedLp        uint64
	Bootstrapping        Bootstrapping
	FeeCurve             FeeCurve
	IsUpdateFeeCompleted bool
	Padding              Padding
	CurveType            CurveType
}

// LockEscrow is the per-owner locked LP account state.
type LockEscrow struct {
	Pool                solana.PublicKey
	Owner               solana.PublicKey
	EscrowVault         solana.PublicKey
	Bump                uint8
	TotalLockedAmount   uint64
	LpPerToken          binary.Uint128
	UnclaimedFeePending uint64
	AFee                uint64
	BFee                uint64
}

func accountDiscriminator(name string) []byte {
	hash := sha256.Sum256([]byte("account:" + name))
	return hash[:8]
}

func parseAccount(name string, data []byte, out interface{}) error {
	disc := accountDiscriminator(name)
	if len(data) < len(disc) || !bytes.Equal(data[:len(disc)], disc) {
		return fmt.Errorf("%s account discriminator mismatch", name)
	}
	if err := binary.NewBorshDecoder(data[len(disc):]).Decode(out); err != nil {
		return fmt.Errorf("decode %s account: %w", name, err)
	}
	return nil
}

// ParsePool deserializes a pool account, verifying the anchor discriminator.
func ParsePool(data []byte) (*Pool, error) {
	pool := &Pool{}
	if err := parseAccount(AccountKeyPool, data, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// ParseLockEscrow deserializes a lock escrow account.
func ParseLockEscrow(data []byte) (*LockEscrow, error) {
	escrow := &LockEscrow{}
	if err := parseAccount(AccountKeyLockEscrow, data, escrow); err != nil {
		return nil, err
	}
	return escrow, nil
}
