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

// Package views binds each resource kind to a table definition: the
// columns shown, how they sort and search, the default sort and the delete
// actions.
//
//	def, err := views.For(resource.ManagedClusters)
//	tbl, err := views.NewTable(def, items, views.ClientActions(ctx, client, def.Kind))
//	view, err := tbl.Dispatch(table.SearchCmd{Query: "prod"})
//
// Rows are keyed by namespace/name, or by name for cluster scoped kinds.
// Versions sort semantically with unparsable versions last.
package views
