package dammV1

import (
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

// DammV1 is a client for dynamic AMM pools. Quote math is exposed as free
// functions; the client adds account fetching and transaction plumbing.
type DammV1 struct {
	rpcClient *rpc.Client
	wsClient  *ws.Client
	bSimulate bool
}

func NewDammV1(
	rpcClient *rpc.Client,
	opts ...Option,
) *DammV1 {
	o := &DammV1{
		rpcClient: rpcClient,
	}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

type Option func(*DammV1)

// WithWsClient enables transaction confirmation over websocket.
func WithWsClient(wsClient *ws.Client) Option {
	return func(m *DammV1) {
		m.wsClient = wsClient
	}
}

// WithSimulate makes Swap simulate transactions instead of sending them.
func WithSimulate(bSimulate bool) Option {
	return func(m *DammV1) {
		m.bSimulate = bSimulate
	}
}
