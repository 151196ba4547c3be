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
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/cluster-console/pkg/defaults"
	"github.com/NVIDIA/cluster-console/pkg/k8s/client"
	"github.com/NVIDIA/cluster-console/pkg/logging"
	"github.com/NVIDIA/cluster-console/pkg/resource"
	"github.com/NVIDIA/cluster-console/pkg/serializer"
)

const (
	name           = "ccon"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// newResourceClient connects to the cluster of kubeconfig. Tests replace it.
var newResourceClient = func(kubeconfig string) (resource.Interface, error) {
	clients, err := client.BuildClients(kubeconfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cluster: %w", err)
	}
	return resource.NewClient(clients.Dynamic), nil
}

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage: `Output destination: file path or ConfigMap URI (cm://namespace/name).
	Defaults to stdout.`,
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatTable),
		Usage:   fmt.Sprintf("Output format (supported values: %v)", serializer.SupportedFormats()),
		Sources: cli.EnvVars("CCON_FORMAT"),
	}

	namespaceFlag = &cli.StringFlag{
		Name:    "namespace",
		Aliases: []string{"n"},
		Usage:   "Namespace of namespaced kinds (default: all namespaces)",
		Sources: cli.EnvVars("CCON_NAMESPACE"),
	}

	selectorFlag = &cli.StringFlag{
		Name:    "selector",
		Aliases: []string{"l"},
		Usage:   "Label selector added to the kind's own selector",
	}

	filterFlag = &cli.StringSliceFlag{
		Name:  "filter",
		Usage: "Facet filter as id:value[,value], can be repeated (clusters: status, credentials: provider)",
	}
)

// Execute runs the console CLI with os.Args and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Browse and manage cluster resources as tables",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kubeconfig",
				Usage:   "Path to the kubeconfig file (default: $KUBECONFIG, ~/.kube/config or in-cluster)",
				Sources: cli.EnvVars("CCON_KUBECONFIG", "KUBECONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("CCON_LOG_LEVEL", logging.EnvVarLogLevel),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logLevel := cmd.String("log-level")
			logging.SetDefaultStructuredLoggerWithLevel(name, version, logLevel)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date,
				"logLevel", logLevel)
			return ctx, nil
		},
		Commands: []*cli.Command{
			kindsCmd(),
			listCmd(),
			createCmd(),
			deleteCmd(),
		},
	}
}

func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, serializer.SupportedFormats())
	}
	return f, nil
}

// lookupKind resolves the first argument as a resource kind.
func lookupKind(cmd *cli.Command) (resource.Kind, error) {
	if cmd.NArg() < 1 {
		return resource.Kind{}, fmt.Errorf("resource kind is required, run %q for the list", name+" kinds")
	}
	return resource.Lookup(cmd.Args().First())
}

// write serializes v to the command's output.
func write(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}
	ser := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	defer func() {
		if closer, ok := ser.(serializer.Closer); ok {
			if err := closer.Close(); err != nil {
				slog.Warn("failed to close serializer", "error", err)
			}
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()
	return ser.Serialize(ctx, v)
}

func withCommandTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaults.CLICommandTimeout)
}
