// Copyright © 2025 Clawbook

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package prom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "clawbook_indexer"

	connSubsystem  = "connections"
	statsSubsystem = "stats"
)

var (
	metrics bool

	profileCount  prometheus.Counter
	postCount     prometheus.Counter
	followCount   prometheus.Counter
	likeCount     prometheus.Counter
	referralCount prometheus.Counter

	decodeErrorCount prometheus.Counter
	syncCount        prometheus.Counter

	syncInProgress prometheus.Gauge
	syncDuration   prometheus.Summary
)

func Init() {
	metrics = true

	profileCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: statsSubsystem,
		Name:      "profiles_indexed",
		Help:      "Number of profile accounts indexed",
	})

	postCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: statsSubsystem,
		Name:      "posts_indexed",
		Help:      "Number of post accounts indexed",
	})

	followCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: statsSubsystem,
		Name:      "follows_indexed",
		Help:      "Number of follow accounts indexed",
	})

	likeCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: statsSubsystem,
		Name:      "likes_indexed",
		Help:      "Number of like accounts indexed",
	})

	referralCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: statsSubsystem,
		Name:      "referrals_indexed",
		Help:      "Number of referral accounts indexed",
	})

	decodeErrorCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: statsSubsystem,
		Name:      "decode_errors",
		Help:      "Number of accounts skipped as malformed or ambiguous",
	})

	syncCount = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: statsSubsystem,
		Name:      "syncs_total",
		Help:      "Number of completed full syncs",
	})

	syncInProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: statsSubsystem,
		Name:      "sync_in_progress",
		Help:      "Whether a full sync is currently running",
	})

	syncDuration = promauto.NewSummary(prometheus.SummaryOpts{
		Namespace: namespace,
		Subsystem: statsSubsystem,
		Name:      "sync_duration_seconds",
		Help:      "Duration of completed full sync passes",
	})
}

// RegisterDBCollector create metric collector for given connection
func RegisterDBCollector(name string, db DBStatsGetter) {
	if metrics {
		prometheus.Register(NewDBStatsCollector(name, db))
	}
}

// IncProfileCount increments the number of profiles indexed
func IncProfileCount() {
	if metrics {
		profileCount.Inc()
	}
}

// IncPostCount increments the number of posts indexed
func IncPostCount() {
	if metrics {
		postCount.Inc()
	}
}

// IncFollowCount increments the number of follows indexed
func IncFollowCount() {
	if metrics {
		followCount.Inc()
	}
}

// IncLikeCount increments the number of likes indexed
func IncLikeCount() {
	if metrics {
		likeCount.Inc()
	}
}

// IncReferralCount increments the number of referrals indexed
func IncReferralCount() {
	if metrics {
		referralCount.Inc()
	}
}

// IncDecodeErrorCount increments the number of skipped accounts
func IncDecodeErrorCount() {
	if metrics {
		decodeErrorCount.Inc()
	}
}

// IncSyncCount increments the number of completed full syncs
func IncSyncCount() {
	if metrics {
		syncCount.Inc()
	}
}

// ObserveSyncDuration records the wall time of a completed full sync
func ObserveSyncDuration(seconds float64) {
	if metrics {
		syncDuration.Observe(seconds)
	}
}

// SetSyncInProgress flips the sync-in-progress gauge
func SetSyncInProgress(running bool) {
	if metrics {
		if running {
			syncInProgress.Set(1)
		} else {
			syncInProgress.Set(0)
		}
	}
}
