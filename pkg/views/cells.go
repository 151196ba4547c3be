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

package views

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/util/duration"
	"k8s.io/utils/ptr"

	"github.com/NVIDIA/cluster-console/pkg/table"
)

// now is replaced in tests.
var now = time.Now

func str(item Item, fields ...string) string {
	s, _, _ := unstructured.NestedString(item.Object, fields...)
	return s
}

// optional turns "" into nil so the value sorts last.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return ptr.To(s)
}

func stringColumn(header string, get func(Item) string) table.Column[Item] {
	return table.Column[Item]{
		Header: header,
		Cell:   get,
		Sort: func(a, b Item) int {
			return table.CompareStrings(optional(get(a)), optional(get(b)))
		},
		Search: get,
	}
}

func pathColumn(header, path string) table.Column[Item] {
	return table.Column[Item]{
		Header:     header,
		CellPath:   path,
		SortPath:   path,
		SearchPath: path,
	}
}

func nameColumn() table.Column[Item] {
	return pathColumn("Name", "metadata.name")
}

func namespaceColumn() table.Column[Item] {
	return pathColumn("Namespace", "metadata.namespace")
}

func ageColumn() table.Column[Item] {
	return table.Column[Item]{
		Header: "Age",
		Cell:   age,
		Sort: func(a, b Item) int {
			// older first
			return compareTimes(a.GetCreationTimestamp().Time, b.GetCreationTimestamp().Time)
		},
		Export: func(item Item) string {
			ts := item.GetCreationTimestamp()
			if ts.IsZero() {
				return ""
			}
			return ts.UTC().Format(time.RFC3339)
		},
	}
}

func versionColumn(header string, get func(Item) string) table.Column[Item] {
	return table.Column[Item]{
		Header: header,
		Cell:   get,
		Sort: func(a, b Item) int {
			return compareVersions(get(a), get(b))
		},
		Search: get,
	}
}

func age(item Item) string {
	ts := item.GetCreationTimestamp()
	if ts.IsZero() {
		return "-"
	}
	return duration.HumanDuration(now().Sub(ts.Time))
}

func compareTimes(a, b time.Time) int {
	switch {
	case a.IsZero() && b.IsZero():
		return 0
	case a.IsZero():
		return 1
	case b.IsZero():
		return -1
	}
	return a.Compare(b)
}

// compareVersions orders semantic versions, with unparsable or empty
// versions last in lexical order.
func compareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	switch {
	case errA != nil && errB != nil:
		return table.CompareStrings(optional(a), optional(b))
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}
	if c := va.Compare(vb); c != 0 {
		return c
	}
	return cmp.Compare(a, b)
}

func labelText(item Item) string {
	labels := item.GetLabels()
	if len(labels) == 0 {
		return ""
	}
	parts := make([]string, 0, len(labels))
	for _, k := range slices.Sorted(maps.Keys(labels)) {
		parts = append(parts, fmt.Sprintf("%s=%s", k, labels[k]))
	}
	return strings.Join(parts, ", ")
}

// condition returns the status of the condition of the given type, or ""
// when absent.
func condition(item Item, condType string) string {
	conds, _, _ := unstructured.NestedSlice(item.Object, "status", "conditions")
	for _, c := range conds {
		m, ok := c.(map[string]any)
		if !ok {
			continue
		}
		if m["type"] == condType {
			s, _ := m["status"].(string)
			return s
		}
	}
	return ""
}
