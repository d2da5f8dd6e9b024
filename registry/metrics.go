// Copyright 2026 Blink Labs Software
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

package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const registryMetricNamePrefix = "nile_registry_"

type registryMetrics struct {
	agents      prometheus.Counter
	programs    prometheus.Counter
	scores      prometheus.Counter
	reports     prometheus.Counter
	votes       *prometheus.CounterVec
	finalized   *prometheus.CounterVec
	rejectedOps *prometheus.CounterVec
}

func (r *Registry) initMetrics(promRegistry prometheus.Registerer) {
	promautoFactory := promauto.With(promRegistry)
	r.metrics = &registryMetrics{
		agents: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: registryMetricNamePrefix + "agents_authorized_total",
				Help: "agents authorized",
			},
		),
		programs: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: registryMetricNamePrefix + "programs_registered_total",
				Help: "programs registered",
			},
		),
		scores: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: registryMetricNamePrefix + "scores_submitted_total",
				Help: "score submissions accepted",
			},
		),
		reports: promautoFactory.NewCounter(
			prometheus.CounterOpts{
				Name: registryMetricNamePrefix + "reports_submitted_total",
				Help: "reports submitted",
			},
		),
		votes: promautoFactory.NewCounterVec(
			prometheus.CounterOpts{
				Name: registryMetricNamePrefix + "votes_total",
				Help: "report votes cast, by stance",
			},
			[]string{"stance"},
		),
		finalized: promautoFactory.NewCounterVec(
			prometheus.CounterOpts{
				Name: registryMetricNamePrefix + "reports_finalized_total",
				Help: "reports finalized, by outcome",
			},
			[]string{"outcome"},
		),
		rejectedOps: promautoFactory.NewCounterVec(
			prometheus.CounterOpts{
				Name: registryMetricNamePrefix + "operations_rejected_total",
				Help: "operations refused, by error code",
			},
			[]string{"op", "code"},
		),
	}
}
