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

package sync

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"

	"github.com/metasal1/clawbook-indexer/pkg/index"
)

// EventAccount is one touched account inside a webhook event, carrying its
// post-transaction byte state.
type EventAccount struct {
	Account             string `json:"account"`
	Data                string `json:"data"`
	NativeBalanceChange int64  `json:"nativeBalanceChange"`
}

// Event is one transaction-like entry of a webhook payload. An entry with a
// recognized high-level Type was already interpreted upstream; only raw
// program interactions (empty or UNKNOWN type) need manual account decode.
type Event struct {
	Signature   string         `json:"signature"`
	Timestamp   int64          `json:"timestamp"`
	Type        string         `json:"type"`
	AccountData []EventAccount `json:"accountData"`
	LogMessages []string       `json:"logMessages"`
}

func (e *Event) needsDecode() bool {
	return e.Type == "" || e.Type == "UNKNOWN"
}

// ParseEvents decodes a webhook body, accepting either a JSON array of
// events or a single event object.
func ParseEvents(body []byte) ([]Event, error) {
	var events []Event
	if err := json.Unmarshal(body, &events); err == nil {
		return events, nil
	}
	var one Event
	if err := json.Unmarshal(body, &one); err != nil {
		return nil, fmt.Errorf("malformed webhook payload: %w", err)
	}
	return []Event{one}, nil
}

// IngestEvents runs the incremental sync path over webhook events. Events
// with zero relevant accounts are a no-op, not an error. Accounts with
// undecodable base64, unrecognized shapes, or shapes that fail seed
// derivation (accounts of unrelated programs) are filtered out.
func (s *Service) IngestEvents(ctx context.Context, events []Event) (*Results, error) {
	db, err := s.index()
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", index.ErrIndexUnavailable, err)
	}

	res := &Results{}
	for i := range events {
		ev := &events[i]
		if !ev.needsDecode() {
			log.WithFields(log.Fields{
				"signature": ev.Signature,
				"type":      ev.Type,
			}).Debug("skipping interpreted event")
			continue
		}
		for _, acct := range ev.AccountData {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if acct.Data == "" {
				continue
			}
			key, err := solana.PublicKeyFromBase58(acct.Account)
			if err != nil {
				log.WithField("account", acct.Account).Debug("skipping unparseable account key")
				continue
			}
			raw, err := base64.StdEncoding.DecodeString(acct.Data)
			if err != nil {
				log.WithField("account", acct.Account).Debug("skipping undecodable account data")
				continue
			}
			s.ingestAccount(ctx, key, raw, false, res)
		}
	}
	return res, nil
}
