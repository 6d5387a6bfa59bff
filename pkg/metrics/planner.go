// Copyright 2024 PingCAP, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Optimizer metrics.
var (
	RuleApplyCounter            *prometheus.CounterVec
	RuleErrorCounter            *prometheus.CounterVec
	OptimizeIterationsHistogram prometheus.Histogram
	OptimizeDuration            prometheus.Histogram
	IterationLimitCounter       prometheus.Counter
)

// InitPlannerMetrics initializes optimizer metrics.
func InitPlannerMetrics() {
	RuleApplyCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemOptimizer,
			Name:      "rule_apply_total",
			Help:      "Counter of successful logical rewrites per rule.",
		}, []string{LblRule})

	RuleErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemOptimizer,
			Name:      "rule_error_total",
			Help:      "Counter of rule applications that returned an error.",
		}, []string{LblRule})

	OptimizeIterationsHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemOptimizer,
			Name:      "iterations",
			Help:      "Bucketed histogram of passes made over a plan until it reached a fixpoint.",
			Buckets:   prometheus.LinearBuckets(1, 1, 16),
		})

	OptimizeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystemOptimizer,
			Name:      "rewrite_duration_seconds",
			Help:      "Bucketed histogram of the time spent in logical rewrites.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 2, 20), // 10us ~ 5s
		})

	IterationLimitCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystemOptimizer,
			Name:      "iteration_limit_total",
			Help:      "Counter of rewrites stopped by the iteration limit before reaching a fixpoint.",
		})
}
