/*
Copyright 2025 The Antfly Contributors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package healthserver

import "github.com/prometheus/client_golang/prometheus"

// CacheHits and CacheMisses count orchestrator read-path outcomes;
// CacheErrors counts driver failures on both the read and write paths;
// UpstreamLatency observes write-path upstream request duration.
// They are registered against the default registry so /metrics (wired by
// Start) serves them without any extra plumbing at call sites.
var (
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pvcache_cache_hits_total",
		Help: "Number of read-path queries served from the cache.",
	})
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pvcache_cache_misses_total",
		Help: "Number of read-path queries that found no cached document.",
	})
	CacheErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pvcache_cache_errors_total",
		Help: "Number of cache operations that failed with a driver error.",
	})
	UpstreamLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "pvcache_upstream_request_duration_seconds",
		Help:    "Latency of write-path requests to the upstream analytics API.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(CacheHits, CacheMisses, CacheErrors, UpstreamLatency)
}
