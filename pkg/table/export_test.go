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
package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/ptr"
)

func TestExportCSV(t *testing.T) {
	cfg := clusterConfig()
	cfg.Columns[colLabels].DisableExport = true
	cfg.Columns[colNodes].Export = func(c cluster) string {
		if c.Nodes == nil {
			return ""
		}
		return strings.Repeat("#", *c.Nodes)
	}
	items := []cluster{
		{Name: "b", Region: "eu, west", Nodes: ptr.To(2)},
		{Name: "a", Region: "us"},
	}
	tbl := newTable(t, cfg, items)

	// exports ignore search, sort and paging
	dispatch(t, tbl, SearchCmd{Query: "a"})
	dispatch(t, tbl, SortCmd{Column: colName, Direction: Ascending})
	dispatch(t, tbl, PerPageCmd{PerPage: 1})

	var buf bytes.Buffer
	require.NoError(t, tbl.ExportCSV(&buf))

	want := "Name,Region,Nodes\n" +
		"b,\"eu, west\",##\n" +
		"a,us,\n"
	assert.Equal(t, want, buf.String())
}
