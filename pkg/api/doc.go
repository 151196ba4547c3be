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

// Package api serves resource tables over HTTP for the ccond binary.
//
// Every view is computed server side from a fresh (or briefly cached)
// list, so clients stay stateless: the table state travels in the query
// string.
//
// # Endpoints
//
//	GET    /v1/kinds                                    registered kinds
//	GET    /v1/resources/{kind}                         table view
//	GET    /v1/resources/{kind}/export                  CSV of every item
//	POST   /v1/resources/{kind}                         create from a manifest
//	POST   /v1/resources/{kind}/delete                  bulk delete
//	DELETE /v1/resources/{kind}/{name}                  delete a cluster-scoped item
//	DELETE /v1/resources/{kind}/{namespace}/{name}      delete a namespaced item
//
// The table view accepts namespace, selector, search, sort (a column
// header), dir (asc or desc), page, perPage and selected (row keys).
//
//	curl 'localhost:8080/v1/resources/clusters?search=prod&sort=Age&dir=desc&perPage=20'
//
// Bulk delete takes either explicit keys or all items matching a search:
//
//	{"keys": ["prod-east", "prod-west"]}
//	{"search": "prod", "all": true}
//
// Create and bulk delete bodies are JSON, or YAML when the Content-Type
// says so. Errors use the structured error body of pkg/server.
//
// Serve wires the handlers into pkg/server, which owns middleware, health
// and readiness endpoints, metrics and graceful shutdown.
package api
