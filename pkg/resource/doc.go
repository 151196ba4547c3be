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

// Package resource reads and writes the cluster-management resources shown
// by the console: managed clusters, provider connections, bare metal
// assets, discovery configs and discovered clusters.
//
// Every kind is described by a Kind in a fixed registry and accessed
// through a dynamic client, so no generated clientsets are needed:
//
//	kind, err := resource.Lookup("clusters")
//	c := resource.NewClient(clients.Dynamic)
//	items, err := c.List(ctx, kind, resource.ListOptions{})
//
// # Errors
//
// API failures are returned as *errors.StructuredError. The code follows
// the Kubernetes status: 401 UNAUTHORIZED, 403 FORBIDDEN, 404 NOT_FOUND,
// 409 CONFLICT, 400/422 INVALID_REQUEST, 429 RATE_LIMIT_EXCEEDED, timeouts
// TIMEOUT, 503 and network failures SERVICE_UNAVAILABLE, anything else
// INTERNAL. The context names the kind, verb, namespace and name.
//
// # Bulk Delete
//
// DeleteAll runs deletes concurrently without cancelling the rest when one
// fails. The returned error joins every failure.
//
// # Caching
//
// CachedClient keeps list results for a short TTL and drops them on any
// write to the same kind.
//
// # Metrics
//
//   - ccon_resource_requests_total{kind,verb,code}
//   - ccon_resource_request_duration_seconds{kind,verb}
//   - ccon_list_cache_hits_total{kind}
//   - ccon_list_cache_misses_total{kind}
package resource
