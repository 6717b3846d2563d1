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
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metasal1/clawbook-indexer/pkg/export"
	"github.com/metasal1/clawbook-indexer/pkg/index"
	"github.com/metasal1/clawbook-indexer/pkg/sync"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the search index tables to newline-delimited JSON files",
	Long: `Usage

./clawbook-indexer export --config={path to toml config file}`,
	Run: func(cmd *cobra.Command, args []string) {
		subCommand = cmd.CalledAs()
		logWithCommand = *logrus.WithField("SubCommand", subCommand)
		exportIndex()
	},
}

func exportIndex() {
	config, err := export.NewConfig()
	if err != nil {
		logWithCommand.Fatalf("unable to initialize config: %v", err)
	}

	viper.BindEnv(sync.INDEX_DB_PATH_TOML, sync.INDEX_DB_PATH)
	dbPath := viper.GetString(sync.INDEX_DB_PATH_TOML)
	db, err := index.Open(dbPath)
	if err != nil {
		logWithCommand.Fatal(err)
	}
	defer db.Close()

	service, err := export.NewExportService(db)
	if err != nil {
		logWithCommand.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logWithCommand.Infof("exporting %v to %s", config.Tables, config.OutputDir)
	written, err := service.Export(ctx, config)
	if err != nil {
		logWithCommand.Fatalf("export failed: %v", err)
	}
	total := 0
	for _, n := range written {
		total += n
	}
	logWithCommand.Infof("export complete, %d rows across %d tables", total, len(written))
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.PersistentFlags().String(export.EXPORT_OUTPUT_DIR_CLI, "", "directory to write table dumps into")
	exportCmd.PersistentFlags().StringSlice(export.EXPORT_TABLES_CLI, nil, "tables to export (default all)")

	viper.BindPFlag(export.EXPORT_OUTPUT_DIR_TOML, exportCmd.PersistentFlags().Lookup(export.EXPORT_OUTPUT_DIR_CLI))
	viper.BindPFlag(export.EXPORT_TABLES_TOML, exportCmd.PersistentFlags().Lookup(export.EXPORT_TABLES_CLI))
}
