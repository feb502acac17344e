package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/tidwall/gjson"
)

// GetMintBalances returns the wallet's SPL token holdings keyed by mint,
// walking the jsonParsed account payloads. Empty accounts are skipped.
func GetMintBalances(ctx context.Context, rpcClient *rpc.Client, wallet solana.PublicKey) (map[string]uint64, error) {
	resp, err := rpcClient.GetTokenAccountsByOwner(ctx, wallet, &rpc.GetTokenAccountsConfig{
		ProgramId: &solana.TokenProgramID,
	}, &rpc.GetTokenAccountsOpts{
		Encoding:   solana.EncodingJSONParsed,
		Commitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return nil, err
	}

	mintBalance := make(map[string]uint64)
	for _, v := range resp.Value {
		mint := gjson.GetBytes(v.Account.Data.GetRawJSON(), "parsed.info.mint").String()
		amount := gjson.GetBytes(v.Account.Data.GetRawJSON(), "parsed.info.tokenAmount.amount").Uint()
		if amount == 0 || mint == "" {
			continue
		}
		mintBalance[mint] = amount
	}
	return mintBalance, nil
}
