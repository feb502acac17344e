package solana

import (
	"context"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Clock mirrors the clock sysvar account layout.
type Clock struct {
	Slot                uint64
	EpochStartTimestamp int64
	Epoch               uint64
	LeaderScheduleEpoch uint64
	UnixTimestamp       int64
}

// GetClock fetches and decodes the clock sysvar. Vault profit unlocking is
// timestamp driven even on slot-activated pools, so callers usually need both
// the clock and CurrenPoint.
func GetClock(ctx context.Context, rpcClient *rpc.Client) (*Clock, error) {
	out, err := GetAccountInfo(ctx, rpcClient, solana.SysVarClockPubkey)
	if err != nil {
		return nil, fmt.Errorf("failed to get clock sysvar: %w", err)
	}

	clock := &Clock{}
	if err := binary.NewBinDecoder(out.Value.Data.GetBinary()).Decode(clock); err != nil {
		return nil, fmt.Errorf("failed to decode clock sysvar: %w", err)
	}
	return clock, nil
}
