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
package defaults

import "time"

// Kubernetes API timeouts for resource access.
const (
	// ResourceListTimeout bounds a full paginated list of one kind.
	ResourceListTimeout = 30 * time.Second

	// ResourceWriteTimeout bounds a single create or delete call.
	ResourceWriteTimeout = 15 * time.Second

	// ResourceBulkDeleteTimeout bounds a bulk delete across all selected items.
	ResourceBulkDeleteTimeout = 60 * time.Second
)

// Resource access limits.
const (
	// ListPageSize is the page size requested from the API server while
	// listing. Lists are always read to completion.
	ListPageSize int64 = 500

	// BulkDeleteConcurrency caps in-flight deletes of a bulk action.
	BulkDeleteConcurrency = 8

	// ListCacheTTL is how long a list result is served from cache.
	ListCacheTTL = 5 * time.Second

	// ListCacheCleanupInterval is how often expired list entries are purged.
	ListCacheCleanupInterval = time.Minute

	// MaxRequestBodyBytes caps a create or bulk delete request body.
	MaxRequestBodyBytes int64 = 1 << 20
)

// Handler timeouts for HTTP request processing.
const (
	// TableHandlerTimeout is the timeout for listing and rendering a table view.
	TableHandlerTimeout = 35 * time.Second

	// MutationHandlerTimeout is the timeout for create and delete requests.
	MutationHandlerTimeout = 65 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 70 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// Output and remote input timeouts.
const (
	// ConfigMapWriteTimeout bounds writing a rendered view to a ConfigMap.
	ConfigMapWriteTimeout = 30 * time.Second

	// HTTPClientTimeout is the total timeout for fetching a remote manifest.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the dial timeout for remote manifests.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout bounds the TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout bounds waiting for response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is how long idle connections are kept.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the TCP keep-alive period.
	HTTPKeepAlive = 30 * time.Second
)

// CLI timeouts for command-line operations.
const (
	// CLICommandTimeout bounds one console command end to end.
	CLICommandTimeout = 2 * time.Minute
)
