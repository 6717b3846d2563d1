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

// ENV variables
const (
	LEDGER_RPC_URL    = "LEDGER_RPC_URL"
	LEDGER_PROGRAM_ID = "LEDGER_PROGRAM_ID"

	INDEX_DB_PATH = "INDEX_DB_PATH"

	SERVER_HTTP_ADDR   = "SERVER_HTTP_ADDR"
	SERVER_HTTP_PORT   = "SERVER_HTTP_PORT"
	SERVER_AUTH_SECRET = "SERVER_AUTH_SECRET"

	LOGRUS_LEVEL = "LOGRUS_LEVEL"
	LOGRUS_FILE  = "LOGRUS_FILE"

	PROM_METRICS   = "PROM_METRICS"
	PROM_HTTP      = "PROM_HTTP"
	PROM_HTTP_ADDR = "PROM_HTTP_ADDR"
	PROM_HTTP_PORT = "PROM_HTTP_PORT"
	PROM_DB_STATS  = "PROM_DB_STATS"
)

// TOML bindings
const (
	LEDGER_RPC_URL_TOML    = "ledger.rpcURL"
	LEDGER_PROGRAM_ID_TOML = "ledger.programID"

	INDEX_DB_PATH_TOML = "index.dbPath"

	SERVER_HTTP_ADDR_TOML   = "server.httpAddr"
	SERVER_HTTP_PORT_TOML   = "server.httpPort"
	SERVER_AUTH_SECRET_TOML = "server.authSecret"

	LOGRUS_LEVEL_TOML = "log.level"
	LOGRUS_FILE_TOML  = "log.file"

	PROM_METRICS_TOML   = "prom.metrics"
	PROM_HTTP_TOML      = "prom.http"
	PROM_HTTP_ADDR_TOML = "prom.httpAddr"
	PROM_HTTP_PORT_TOML = "prom.httpPort"
	PROM_DB_STATS_TOML  = "prom.dbStats"
)

// CLI flags
const (
	LEDGER_RPC_URL_CLI    = "rpc-url"
	LEDGER_PROGRAM_ID_CLI = "program-id"

	INDEX_DB_PATH_CLI = "db-path"

	SERVER_HTTP_ADDR_CLI   = "http-addr"
	SERVER_HTTP_PORT_CLI   = "http-port"
	SERVER_AUTH_SECRET_CLI = "auth-secret"

	LOGRUS_LEVEL_CLI = "log-level"
	LOGRUS_FILE_CLI  = "log-file"

	PROM_METRICS_CLI   = "prom-metrics"
	PROM_HTTP_CLI      = "prom-http"
	PROM_HTTP_ADDR_CLI = "prom-httpAddr"
	PROM_HTTP_PORT_CLI = "prom-httpPort"
	PROM_DB_STATS_CLI  = "prom-dbStats"
)
