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
	"encoding/csv"
	"fmt"
	"io"
)

// ExportCSV writes every item, unfiltered and in original order, as CSV.
// Columns with DisableExport or an empty header are skipped.
func (t *Table[T]) ExportCSV(w io.Writer) error {
	t.runIndex()

	var cols []int
	var header []string
	for i, c := range t.cfg.Columns {
		if c.DisableExport || c.Header == "" {
			continue
		}
		cols = append(cols, i)
		header = append(header, c.Header)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for n, item := range t.items {
		cells := t.cells(n)
		record := make([]string, len(cols))
		for i, ci := range cols {
			if export := t.cfg.Columns[ci].Export; export != nil {
				record[i] = export(item)
			} else {
				record[i] = cells[ci]
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record %d: %w", n, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
