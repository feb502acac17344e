package dynamic_amm

import (
	"bytes"
	"testing"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/MeteoraAg/damm-v1-sdk/u128"
)

func TestCurveTypeBorshRoundTrip(t *testing.T) {
	stable := CurveType{
		Kind: CurveKindStable,
		Stable: StableParams{
			Amp: 100,
			TokenMultiplier: TokenMultiplier{
				TokenAMultiplier: 1_000,
				TokenBMultiplier: 1,
				PrecisionFactor:  3,
			},
			Depeg: Depeg{
				BaseVirtualPrice: 1_100_000,
				BaseCacheUpdated: 1_700_000_000,
				DepegType:        DepegTypeSplStake,
			},
			LastAmpUpdatedTimestamp: 1_699_999_000,
		},
	}

	buf := new(bytes.Buffer)
	require.NoError(t, binary.NewBorshEncoder(buf).Encode(stable))

	var decoded CurveType
	require.NoError(t, binary.NewBorshDecoder(buf.Bytes()).Decode(&decoded))
	require.Equal(t, stable, decoded)

	// constant product encodes as a bare tag
	cp := CurveType{Kind: CurveKindConstantProduct}
	buf.Reset()
	require.NoError(t, binary.NewBorshEncoder(buf).Encode(cp))
	require.Equal(t, 1, buf.Len())

	require.NoError(t, binary.NewBorshDecoder(buf.Bytes()).Decode(&decoded))
	require.Equal(t, cp, decoded)
}

func TestParsePool(t *testing.T) {
	pool := Pool{
		LpMint:     solana.NewWallet().PublicKey(),
		TokenAMint: solana.NewWallet().PublicKey(),
		TokenBMint: solana.NewWallet().PublicKey(),
		AVault:     solana.NewWallet().PublicKey(),
		BVault:     solana.NewWallet().PublicKey(),
		Enabled:    true,
		Fees: PoolFees{
			TradeFeeNumerator:           250,
			TradeFeeDenominator:         100_000,
			ProtocolTradeFeeNumerator:   20,
			ProtocolTradeFeeDenominator: 100,
		},
		CurveType: CurveType{Kind: CurveKindConstantProduct},
	}

	body := new(bytes.Buffer)
	require.NoError(t, binary.NewBorshEncoder(body).Encode(pool))

	data := append(accountDiscriminator(AccountKeyPool), body.Bytes()...)

	decoded, err := ParsePool(data)
	require.NoError(t, err)
	require.Equal(t, pool.TokenAMint, decoded.TokenAMint)
	require.Equal(t, pool.Fees, decoded.Fees)
	require.True(t, decoded.Enabled)

	_, err = ParsePool(append([]byte("wrongdis"), body.Bytes()...))
	require.Error(t, err)
}

func TestParseLockEscrow(t *testing.T) {
	escrow := LockEscrow{
		Pool:              solana.NewWallet().PublicKey(),
		Owner:             solana.NewWallet().PublicKey(),
		EscrowVault:       solana.NewWallet().PublicKey(),
		Bump:              254,
		TotalLockedAmount: 5_000_000,
		LpPerToken:        u128.GenUint128FromString("18446744073709551616"),
	}

	body := new(bytes.Buffer)
	require.NoError(t, binary.NewBorshEncoder(body).Encode(escrow))

	data := append(accountDiscriminator(AccountKeyLockEscrow), body.Bytes()...)

	decoded, err := ParseLockEscrow(data)
	require.NoError(t, err)
	require.Equal(t, escrow.Owner, decoded.Owner)
	require.Equal(t, escrow.LpPerToken.BigInt(), decoded.LpPerToken.BigInt())
}
