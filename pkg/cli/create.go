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

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/serializer"
	"github.com/NVIDIA/cluster-console/pkg/views"
)

func createCmd() *cli.Command {
	return &cli.Command{
		Name:      "create",
		Usage:     "Create a resource from a manifest",
		ArgsUsage: "KIND",
		Description: `Create one resource of KIND from a JSON or YAML manifest.
apiVersion and kind may be omitted from the manifest.

Examples:
  ccon create clusters -f edge-1.yaml
  ccon create credentials -f https://example.com/aws.yaml
  ccon create discoveryconfigs -f cm://discovery/config-template`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "filename",
				Aliases:  []string{"f"},
				Required: true,
				Usage: `Path/URI of the manifest.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			kind, err := lookupKind(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := withCommandTimeout(ctx)
			defer cancel()

			path := cmd.String("filename")
			m, err := serializer.FromFileWithKubeconfig[resource.Manifest](ctx, path, cmd.String("kubeconfig"))
			if err != nil {
				return fmt.Errorf("failed to load manifest from %q: %w", path, err)
			}
			obj, err := resource.FromManifest(kind, *m)
			if err != nil {
				return err
			}

			c, err := newResourceClient(cmd.String("kubeconfig"))
			if err != nil {
				return err
			}
			created, err := c.Create(ctx, kind, obj)
			if err != nil {
				return fmt.Errorf("failed to create %s %s: %w", kind.Name, views.Key(*obj), err)
			}
			slog.Info("created", "kind", kind.Name, "key", views.Key(*created))

			return write(ctx, cmd, created)
		},
	}
}
