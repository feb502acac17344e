package dammv1

import (
	dammV1 "github.com/MeteoraAg/damm-v1-sdk/damm.v1"
)

// NewClient creates a new DAMM V1 client.
//
// Example:
//
// client := NewClient(rpcClient, dammV1.WithWsClient(wsClient))
//
// client.SwapQuote(ctx, poolAddress, inTokenMint, amountIn, 250)
//
// client.Swap(ctx, payer, owner, poolState, inTokenMint, amountIn, minOut)
var NewClient = dammV1.NewDammV1

// ComputeQuote exposes the pure quote engine for callers that assemble
// account snapshots themselves.
var ComputeQuote = dammV1.ComputeQuote
