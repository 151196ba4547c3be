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
	"fmt"
	"strings"

	"github.com/NVIDIA/cluster-console/pkg/header"
	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/table"
)

// Report is a rendered resource table with its document header.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`
	View          *table.View[Item] `json:"view" yaml:"view"`
}

// NewReport wraps v for output.
func NewReport(kind resource.Kind, v *table.View[Item], version string) *Report {
	r := &Report{View: v}
	r.Init(header.KindResourceTable, version)
	r.SetMetadata("resource", kind.Name)
	return r
}

func (r *Report) TableHeader() []string { return r.View.TableHeader() }
func (r *Report) TableRows() [][]string { return r.View.TableRows() }
func (r *Report) TableCaption() string  { return r.View.TableCaption() }

// KindsReport lists the registered resource kinds.
type KindsReport struct {
	header.Header `json:",inline" yaml:",inline"`
	Kinds         []resource.Kind `json:"kinds" yaml:"kinds"`
}

// NewKindsReport reports every registered kind.
func NewKindsReport(version string) *KindsReport {
	r := &KindsReport{Kinds: resource.Kinds()}
	r.Init(header.KindKindList, version)
	return r
}

func (r *KindsReport) TableHeader() []string {
	return []string{"Name", "Kind", "API Version", "Scope", "Aliases"}
}

func (r *KindsReport) TableRows() [][]string {
	rows := make([][]string, len(r.Kinds))
	for i, k := range r.Kinds {
		scope := "Cluster"
		if k.Namespaced {
			scope = "Namespaced"
		}
		rows[i] = []string{k.Name, k.Kind, k.APIVersion(), scope, strings.Join(k.Aliases, ",")}
	}
	return rows
}

func (r *KindsReport) TableCaption() string {
	return fmt.Sprintf("%d kinds", len(r.Kinds))
}

// DeleteReport is the outcome of a delete with its document header.
type DeleteReport struct {
	header.Header `json:",inline" yaml:",inline"`
	Resource      string `json:"resource" yaml:"resource"`
	DeleteResult  `json:",inline" yaml:",inline"`
}

// NewDeleteReport wraps the result of a delete from kind.
func NewDeleteReport(kind resource.Kind, res *DeleteResult, version string) *DeleteReport {
	r := &DeleteReport{Resource: kind.Name, DeleteResult: *res}
	r.Init(header.KindDeleteResult, version)
	if res.DryRun {
		r.SetMetadata("dryRun", "true")
	}
	return r
}

func (r *DeleteReport) TableHeader() []string { return []string{"Resource", "Key", "Result"} }

func (r *DeleteReport) TableRows() [][]string {
	failed := make(map[string]DeleteFailure, len(r.Failed))
	for _, f := range r.Failed {
		failed[f.Key] = f
	}
	rows := make([][]string, len(r.Matched))
	for i, k := range r.Matched {
		result := "deleted"
		if r.DryRun {
			result = "would be deleted"
		} else if f, ok := failed[k]; ok {
			result = fmt.Sprintf("failed (%s): %s", f.Code, f.Message)
		}
		rows[i] = []string{r.Resource, k, result}
	}
	return rows
}

func (r *DeleteReport) TableCaption() string {
	if r.DryRun {
		return fmt.Sprintf("Dry run: %d would be deleted, confirm to delete", len(r.Matched))
	}
	if len(r.Failed) > 0 {
		return fmt.Sprintf("%d deleted, %d failed", len(r.Deleted), len(r.Failed))
	}
	return fmt.Sprintf("%d deleted", len(r.Deleted))
}
