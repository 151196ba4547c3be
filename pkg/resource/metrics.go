// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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
package resource

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	cnserrors "github.com/NVIDIA/cluster-console/pkg/errors"
)

const (
	verbList   = "list"
	verbGet    = "get"
	verbCreate = "create"
	verbDelete = "delete"
)

var (
	resourceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ccon_resource_requests_total",
			Help: "Total number of Kubernetes API requests by kind, verb and result code",
		},
		[]string{"kind", "verb", "code"},
	)

	resourceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ccon_resource_request_duration_seconds",
			Help:    "Kubernetes API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind", "verb"},
	)

	// List cache metrics
	listCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ccon_list_cache_hits_total",
			Help: "Total number of list requests served from cache",
		},
		[]string{"kind"},
	)
	listCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ccon_list_cache_misses_total",
			Help: "Total number of list requests sent to the API server",
		},
		[]string{"kind"},
	)
)

func observe(kind Kind, verb string, start time.Time, err error) {
	code := "OK"
	if err != nil {
		code = string(cnserrors.CodeOf(err))
	}
	resourceRequestsTotal.WithLabelValues(kind.Name, verb, code).Inc()
	resourceRequestDuration.WithLabelValues(kind.Name, verb).Observe(time.Since(start).Seconds())
}
