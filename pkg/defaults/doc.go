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
// Package defaults centralizes timeouts and limits used across the console.
//
// # Categories
//
//   - Resource timeouts and limits: Kubernetes API list, write and bulk delete
//   - Handler timeouts: HTTP request processing
//   - Server timeouts: HTTP server configuration
//   - Output and remote input: ConfigMap writes and manifest downloads
//   - CLI timeouts: one console command end to end
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.ResourceListTimeout)
//	defer cancel()
//
// Handler timeouts are longer than the resource calls they wrap so a
// resource timeout surfaces as a structured TIMEOUT error instead of a
// dropped connection.
package defaults
