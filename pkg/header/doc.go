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

// Package header provides the common header embedded in every document the
// console emits: rendered resource tables, kind listings and delete results.
//
// Embed the header inline so kind and version sit next to the payload:
//
//	type Report struct {
//		header.Header `json:",inline" yaml:",inline"`
//		View *table.View[views.Item] `json:"view" yaml:"view"`
//	}
//
//	r := &Report{View: v}
//	r.Init(header.KindResourceTable, version)
//	r.SetMetadata("resource", "clusters")
//
// Serialized:
//
//	kind: ResourceTable
//	apiVersion: ccon.nvidia.com/v1alpha1
//	metadata:
//	  resource: clusters
//	  timestamp: "2025-12-30T10:30:00Z"
//	  version: v0.3.0
//
// The ConfigMap writer in package serializer reads Kind and the version
// metadata through GetKind and GetMetadata to label the ConfigMap.
package header
