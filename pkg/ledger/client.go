// Copyright © 2025 Clawbook
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package ledger is the RPC boundary to the Solana node. It exposes exactly
// the reads the sync pipeline needs, so the whole chain side can be mocked
// in tests.
package ledger

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

//go:generate mockgen -destination=../../internal/mocks/ledger.go -package=mocks github.com/metasal1/clawbook-indexer/pkg/ledger Client

// Account is a raw account state as returned by the node.
type Account struct {
	Owner solana.PublicKey
	Data  []byte
}

// KeyedAccount pairs an account with its address, as returned by program
// account enumeration.
type KeyedAccount struct {
	Pubkey solana.PublicKey
	Owner  solana.PublicKey
	Data   []byte
}

// Client is the read-only ledger interface consumed by the sync and query
// paths. A failed call here is the only failure class that aborts an entire
// sync pass.
type Client interface {
	// GetAccountInfo fetches a single account, or nil if it does not exist.
	GetAccountInfo(ctx context.Context, key solana.PublicKey) (*Account, error)

	// GetProgramAccounts enumerates every account owned by program.
	GetProgramAccounts(ctx context.Context, program solana.PublicKey) ([]KeyedAccount, error)

	// GetProgramAccountsBySize enumerates program-owned accounts with an
	// exact data length, the cheap server-side narrowing used by stats.
	GetProgramAccountsBySize(ctx context.Context, program solana.PublicKey, size uint64) ([]KeyedAccount, error)
}

type rpcClient struct {
	rpc *rpc.Client
}

// NewClient creates a Client backed by the JSON-RPC node at url, reading at
// confirmed commitment.
func NewClient(url string) Client {
	return &rpcClient{rpc: rpc.New(url)}
}

func (c *rpcClient) GetAccountInfo(ctx context.Context, key solana.PublicKey) (*Account, error) {
	out, err := c.rpc.GetAccountInfoWithOpts(ctx, key, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, nil
	}
	return &Account{
		Owner: out.Value.Owner,
		Data:  out.Value.Data.GetBinary(),
	}, nil
}

func (c *rpcClient) GetProgramAccounts(ctx context.Context, program solana.PublicKey) ([]KeyedAccount, error) {
	out, err := c.rpc.GetProgramAccountsWithOpts(ctx, program, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return nil, err
	}
	return keyedAccounts(out), nil
}

func (c *rpcClient) GetProgramAccountsBySize(ctx context.Context, program solana.PublicKey, size uint64) ([]KeyedAccount, error) {
	out, err := c.rpc.GetProgramAccountsWithOpts(ctx, program, &rpc.GetProgramAccountsOpts{
		Commitment: rpc.CommitmentConfirmed,
		Filters: []rpc.RPCFilter{
			{DataSize: size},
		},
	})
	if err != nil {
		return nil, err
	}
	return keyedAccounts(out), nil
}

func keyedAccounts(out rpc.GetProgramAccountsResult) []KeyedAccount {
	accounts := make([]KeyedAccount, 0, len(out))
	for _, ka := range out {
		if ka == nil || ka.Account == nil {
			continue
		}
		accounts = append(accounts, KeyedAccount{
			Pubkey: ka.Pubkey,
			Owner:  ka.Account.Owner,
			Data:   ka.Account.Data.GetBinary(),
		})
	}
	return accounts
}
