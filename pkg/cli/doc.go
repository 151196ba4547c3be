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

// Package cli implements the ccon command line: resource tables for the
// terminal.
//
// # Commands
//
// kinds - List the resource kinds and their aliases:
//
//	ccon kinds
//
// list - Show one page of a resource table:
//
//	ccon list clusters --search prod --sort age --desc --per-page 20
//
// Search, sort, paging and selection behave as in the console tables.
// --export-csv writes every item, ignoring search and paging.
//
// create - Create a resource from a manifest file, URL or ConfigMap:
//
//	ccon create credentials -f aws.yaml
//
// delete - Delete by name, or every item matching a search:
//
//	ccon delete clusters prod-east prod-west
//	ccon delete discoveredclusters -n discovery --search rosa --all
//
// # Global Flags
//
//	--kubeconfig   Path to the kubeconfig file
//	--log-level    Log level: debug, info, warn, error (default: warn)
//	--version, -v  Show version information
//
// Output flags of the table commands:
//
//	--output, -o   File path or cm://namespace/name (default: stdout)
//	--format, -t   table, json or yaml (default: table)
//
// # Environment Variables
//
//	CCON_KUBECONFIG, KUBECONFIG   Kubeconfig path
//	CCON_LOG_LEVEL, LOG_LEVEL     Logging verbosity
//	CCON_FORMAT                   Default output format
//	CCON_NAMESPACE                Default namespace
//	CCON_PER_PAGE                 Default page size
//
// # Exit Codes
//
//	0  Success
//	1  Any error
package cli
