// SPDX-License-Identifier: MIT

package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	configReadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcd_config_reads_total",
		Help: "Config file reads served, by outcome",
	}, []string{"outcome"})

	configWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcd_config_writes_total",
		Help: "Config file writes attempted, by outcome",
	}, []string{"outcome"})

	configWriteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mcd_config_write_duration_seconds",
		Help:    "Duration of config file writes in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2.0, 12), // 1ms .. ~4s
	})

	configWriteBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mcd_config_write_bytes",
		Help:    "Size of accepted config writes in bytes",
		Buckets: prometheus.ExponentialBuckets(256, 4.0, 8), // 256B .. ~4MiB
	})

	daemonRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mcd_daemon_requests_total",
		Help: "Requests proxied to the daemon control API, by operation and outcome",
	}, []string{"op", "outcome"})
)

func recordConfigRead(outcome string) {
	configReadsTotal.WithLabelValues(outcome).Inc()
}

func recordConfigWrite(outcome string, size int, duration time.Duration) {
	configWritesTotal.WithLabelValues(outcome).Inc()
	if outcome == "ok" {
		configWriteBytes.Observe(float64(size))
		configWriteDuration.Observe(duration.Seconds())
	}
}

func recordDaemonRequest(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	daemonRequestsTotal.WithLabelValues(op, outcome).Inc()
}
