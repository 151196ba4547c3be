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

// Package serializer writes console output as JSON, YAML or a rendered
// table, and reads manifests back from files, URLs and ConfigMaps.
//
// Table output renders values implementing Tabular, such as a resource table
// view, with a header row and caption. Other values are flattened into sorted
// FIELD/VALUE pairs.
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatTable, "")
//	defer w.(serializer.Closer).Close()
//	if err := w.Serialize(ctx, view); err != nil {
//		return err
//	}
//
// Destinations of the form cm://namespace/name are written to a ConfigMap
// with server-side apply. The same URIs, local paths and http(s) URLs can be
// read back with FromFile:
//
//	m, err := serializer.FromFile[resource.Manifest](ctx, "cm://ops/new-cluster")
//
// For HTTP responses:
//
//	serializer.RespondJSON(w, http.StatusOK, data)
package serializer
