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

package cmd

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metasal1/clawbook-indexer/pkg/index"
	"github.com/metasal1/clawbook-indexer/pkg/ledger"
	"github.com/metasal1/clawbook-indexer/pkg/prom"
	"github.com/metasal1/clawbook-indexer/pkg/server"
	"github.com/metasal1/clawbook-indexer/pkg/sync"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the index API and webhook ingestion endpoints",
	Long: `Usage

./clawbook-indexer serve --config={path to toml config file}`,
	Run: func(cmd *cobra.Command, args []string) {
		subCommand = cmd.CalledAs()
		logWithCommand = *logrus.WithField("SubCommand", subCommand)
		serve()
	},
}

// setup builds the sync service and index handle shared by all commands.
// A missing index configuration is not fatal: reads fall back to live
// on-chain decoding and sync entry points report the index as unavailable.
func setup() (*sync.Service, *index.DB, *sync.Config) {
	config := &sync.Config{}
	if err := config.Init(); err != nil {
		logWithCommand.Fatal(err)
	}

	db, err := index.Open(config.DBPath)
	if err != nil {
		if !errors.Is(err, index.ErrIndexUnavailable) {
			logWithCommand.Fatal(err)
		}
		logWithCommand.WithError(err).Warn("running without a search index")
		db = nil
	}
	if db != nil && viper.GetBool(sync.PROM_DB_STATS_TOML) {
		prom.RegisterDBCollector(config.DBPath, db)
	}

	svc := sync.NewService(ledger.NewClient(config.RPCURL), db, config.ProgramID)
	return svc, db, config
}

func serve() {
	svc, db, config := setup()
	if db != nil {
		defer db.Close()
	}

	addr := fmt.Sprintf("%s:%s", config.HTTPAddr, config.HTTPPort)
	logWithCommand.Infof("serving API on %s", addr)
	srv := server.New(svc, db, config.AuthSecret)
	if err := srv.ListenAndServe(addr); err != nil {
		logWithCommand.Fatal(err)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.PersistentFlags().String(sync.SERVER_HTTP_ADDR_CLI, "0.0.0.0", "api http host")
	serveCmd.PersistentFlags().String(sync.SERVER_HTTP_PORT_CLI, "8080", "api http port")
	serveCmd.PersistentFlags().String(sync.SERVER_AUTH_SECRET_CLI, "", "shared secret gating sync and webhook endpoints")

	viper.BindPFlag(sync.SERVER_HTTP_ADDR_TOML, serveCmd.PersistentFlags().Lookup(sync.SERVER_HTTP_ADDR_CLI))
	viper.BindPFlag(sync.SERVER_HTTP_PORT_TOML, serveCmd.PersistentFlags().Lookup(sync.SERVER_HTTP_PORT_CLI))
	viper.BindPFlag(sync.SERVER_AUTH_SECRET_TOML, serveCmd.PersistentFlags().Lookup(sync.SERVER_AUTH_SECRET_CLI))
}
