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
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one full backfill of the index from on-chain program accounts",
	Long: `Usage

./clawbook-indexer sync --config={path to toml config file}`,
	Run: func(cmd *cobra.Command, args []string) {
		subCommand = cmd.CalledAs()
		logWithCommand = *logrus.WithField("SubCommand", subCommand)
		fullSync()
	},
}

func fullSync() {
	svc, db, _ := setup()
	if db != nil {
		defer db.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := svc.FullSync(ctx)
	if err != nil {
		logWithCommand.Fatal(err)
	}
	logWithCommand.Infof("backfill complete: %d accounts, %d profiles, %d posts, %d follows, %d likes, %d errors",
		res.Total, res.Profiles, res.Posts, res.Follows, res.Likes, res.Errors)
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
