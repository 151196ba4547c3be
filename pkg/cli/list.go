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

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/table"
	"github.com/NVIDIA/cluster-console/pkg/views"
)

func listCmd() *cli.Command {
	return &cli.Command{
		Name:      "list",
		Aliases:   []string{"ls"},
		Usage:     "Show one page of a resource table",
		ArgsUsage: "KIND",
		Description: `List resources of KIND as a table. Filters narrow the items
first, then search is fuzzy and matches every searchable column. Sort takes
a column header.

A --page past the last page is not clamped: the table steps back one page,
so the output may show no rows and a caption naming the last page.

Examples:
  ccon list clusters --search prod --sort age --desc
  ccon list clusters --filter status:Offline,Unknown
  ccon list credentials --filter provider:aws
  ccon list discoveredclusters -n discovery --per-page 20 --page 3 -t yaml
  ccon list credentials --export-csv credentials.csv`,
		Flags: []cli.Flag{
			namespaceFlag,
			selectorFlag,
			filterFlag,
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Fuzzy search query",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Column header to sort by (default: the kind's default sort)",
			},
			&cli.BoolFlag{
				Name:  "desc",
				Usage: "Sort descending",
			},
			&cli.IntFlag{
				Name:  "page",
				Value: 1,
				Usage: "Page to show, starting at 1",
			},
			&cli.IntFlag{
				Name:    "per-page",
				Value:   table.DefaultPerPage,
				Usage:   "Rows per page",
				Sources: cli.EnvVars("CCON_PER_PAGE"),
			},
			&cli.StringSliceFlag{
				Name:  "select",
				Usage: "Mark rows as selected by key (namespace/name for namespaced kinds, can be repeated)",
			},
			&cli.StringFlag{
				Name:  "export-csv",
				Usage: "Also write every item as CSV to this path (- for stdout)",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			kind, err := lookupKind(cmd)
			if err != nil {
				return err
			}
			q, err := queryFromCmd(cmd)
			if err != nil {
				return err
			}

			c, err := newResourceClient(cmd.String("kubeconfig"))
			if err != nil {
				return err
			}

			ctx, cancel := withCommandTimeout(ctx)
			defer cancel()

			def, t, err := views.Open(ctx, c, kind, resource.ListOptions{
				Namespace:     cmd.String("namespace"),
				LabelSelector: cmd.String("selector"),
			})
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", kind.Name, err)
			}
			v, err := q.Apply(def, t)
			if err != nil {
				return err
			}
			if len(v.DuplicateKeys) > 0 {
				slog.Warn("rows share a key", "kind", kind.Name, "keys", v.DuplicateKeys)
			}

			if path := cmd.String("export-csv"); path != "" {
				if err := exportCSV(t, path); err != nil {
					return err
				}
			}

			return write(ctx, cmd, views.NewReport(kind, v, version))
		},
	}
}

func queryFromCmd(cmd *cli.Command) (views.Query, error) {
	filters, err := views.ParseFilters(cmd.StringSlice("filter"))
	if err != nil {
		return views.Query{}, err
	}
	q := views.Query{
		Filters:   filters,
		Search:    cmd.String("search"),
		Sort:      cmd.String("sort"),
		Direction: table.Ascending,
		Page:      int(cmd.Int("page")),
		PerPage:   int(cmd.Int("per-page")),
		Selected:  cmd.StringSlice("select"),
	}
	if cmd.Bool("desc") {
		if q.Sort == "" {
			return views.Query{}, fmt.Errorf("--desc requires --sort")
		}
		q.Direction = table.Descending
	}
	if q.Page < 1 {
		return views.Query{}, fmt.Errorf("--page must be at least 1, got %d", q.Page)
	}
	if q.PerPage < 1 {
		return views.Query{}, fmt.Errorf("--per-page must be at least 1, got %d", q.PerPage)
	}
	return q, nil
}

func exportCSV(t *table.Table[views.Item], path string) (err error) {
	if path == "-" {
		return t.ExportCSV(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return t.ExportCSV(f)
}
