// Copyright (c) 2026 The tierlock developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"

	"github.com/tierlock/tierlock/metrics"
)

// Meters are lazily bound, so enabling prometheus after package init must still
// route engine counters into the registry.
func TestStaking_MetersReachRegistry(t *testing.T) {
	metrics.InitializePrometheusMetrics()

	eng, _ := newTestEngine(t)
	lockFor(t, eng, userA, 2_000)

	gatherers := prometheus.Gatherers{prometheus.DefaultGatherer}
	metricFamilies, err := gatherers.Gather()
	require.NoError(t, err)

	families := make(map[string]*dto.MetricFamily)
	for _, mf := range metricFamilies {
		families[mf.GetName()] = mf
	}

	deposits := families["tierlock_metrics_staking_deposit_count"]
	require.NotNil(t, deposits)
	require.Equal(t, float64(1), deposits.Metric[0].GetCounter().GetValue())

	locked := families["tierlock_metrics_staking_locked_tokens"]
	require.NotNil(t, locked)
	require.Equal(t, float64(2_000), locked.Metric[0].GetGauge().GetValue())
}
