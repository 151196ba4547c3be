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
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/views"
)

func deleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete resources by name, or every resource matching a search",
		ArgsUsage: "KIND [NAME...]",
		Description: `Delete the named resources of KIND, or with --all every resource
passing --filter and matching --search. Nothing is deleted when a named
resource is missing or when the selection includes a protected resource
such as the local cluster.

Search is fuzzy, so --all only lists what it matched unless --yes is given.
When some deletes fail the others still happen; the failures are listed
and the command exits with an error.

Examples:
  ccon delete clusters prod-east prod-west
  ccon delete discoveredclusters -n discovery found-1
  ccon delete discoveredclusters discovery/found-1
  ccon delete discoveredclusters -n discovery --search rosa --all
  ccon delete discoveredclusters -n discovery --search rosa --all --yes
  ccon delete clusters --filter status:Offline --all --yes`,
		Flags: []cli.Flag{
			namespaceFlag,
			selectorFlag,
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"s"},
				Usage:   "Fuzzy search selecting the resources to delete, requires --all",
			},
			filterFlag,
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Delete every resource matching --filter and --search, or every resource without them",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Carry out an --all delete instead of listing what it would delete",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			kind, err := lookupKind(cmd)
			if err != nil {
				return err
			}
			sel, err := selectionFromCmd(cmd, kind)
			if err != nil {
				return err
			}
			if err := sel.Validate(0); err != nil {
				return err
			}

			c, err := newResourceClient(cmd.String("kubeconfig"))
			if err != nil {
				return err
			}

			ctx, cancel := withCommandTimeout(ctx)
			defer cancel()

			_, t, err := views.Open(ctx, c, kind, resource.ListOptions{
				Namespace:     cmd.String("namespace"),
				LabelSelector: cmd.String("selector"),
			})
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", kind.Name, err)
			}
			res, err := views.BulkDelete(t, sel, 0)
			if err != nil {
				return fmt.Errorf("failed to delete %s: %w", kind.Name, err)
			}

			if err := write(ctx, cmd, views.NewDeleteReport(kind, res, version)); err != nil {
				return err
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("failed to delete %d of %d %s", len(res.Failed), len(res.Matched), kind.Name)
			}
			return nil
		},
	}
}

// selectionFromCmd turns NAME arguments into row keys. Namespaced kinds
// take namespace/name or a plain name with --namespace.
func selectionFromCmd(cmd *cli.Command, kind resource.Kind) (views.Selection, error) {
	filters, err := views.ParseFilters(cmd.StringSlice("filter"))
	if err != nil {
		return views.Selection{}, err
	}
	sel := views.Selection{
		Filters: filters,
		Search:  cmd.String("search"),
		All:     cmd.Bool("all"),
		Confirm: cmd.Bool("yes"),
	}
	ns := cmd.String("namespace")
	for _, n := range cmd.Args().Tail() {
		switch {
		case !kind.Namespaced || strings.Contains(n, "/"):
			sel.Keys = append(sel.Keys, n)
		case ns != "":
			sel.Keys = append(sel.Keys, ns+"/"+n)
		default:
			return views.Selection{}, fmt.Errorf("%s is namespaced: use namespace/%s or --namespace", kind.Name, n)
		}
	}
	return sel, nil
}
