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
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the indexer: the ledger RPC
// endpoint, the program whose accounts are indexed, the index database and
// the HTTP surface.
type Config struct {
	RPCURL    string
	ProgramID solana.PublicKey

	DBPath string

	HTTPAddr   string
	HTTPPort   string
	AuthSecret string
}

// Init populates the config from viper, binding env variables over any
// loaded TOML values.
func (c *Config) Init() error {
	viper.BindEnv(LEDGER_RPC_URL_TOML, LEDGER_RPC_URL)
	viper.BindEnv(LEDGER_PROGRAM_ID_TOML, LEDGER_PROGRAM_ID)
	viper.BindEnv(INDEX_DB_PATH_TOML, INDEX_DB_PATH)
	viper.BindEnv(SERVER_HTTP_ADDR_TOML, SERVER_HTTP_ADDR)
	viper.BindEnv(SERVER_HTTP_PORT_TOML, SERVER_HTTP_PORT)
	viper.BindEnv(SERVER_AUTH_SECRET_TOML, SERVER_AUTH_SECRET)

	c.RPCURL = viper.GetString(LEDGER_RPC_URL_TOML)
	if c.RPCURL == "" {
		return fmt.Errorf("must provide a ledger RPC URL")
	}
	programID := viper.GetString(LEDGER_PROGRAM_ID_TOML)
	program, err := solana.PublicKeyFromBase58(programID)
	if err != nil {
		return fmt.Errorf("invalid program ID %q: %w", programID, err)
	}
	c.ProgramID = program

	c.DBPath = viper.GetString(INDEX_DB_PATH_TOML)
	c.HTTPAddr = viper.GetString(SERVER_HTTP_ADDR_TOML)
	c.HTTPPort = viper.GetString(SERVER_HTTP_PORT_TOML)
	c.AuthSecret = viper.GetString(SERVER_AUTH_SECRET_TOML)
	return nil
}
