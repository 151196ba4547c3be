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

// Package logging configures structured slog logging for the console
// binaries.
//
// Logs are JSON on stderr and carry the module and version of the binary
// that wrote them. Debug logs add the source location.
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("ccond", version)
//	    slog.Info("listing", "kind", kind.Name, "namespace", ns)
//	}
//
// The level comes from the LOG_LEVEL environment variable unless set
// explicitly with SetDefaultStructuredLoggerWithLevel. Accepted values are
// debug, info, warn (or warning) and error, in any case. Anything else
// means info.
//
//	LOG_LEVEL=debug ccon list clusters
//
// NewLogLogger adapts the default handler for APIs that still want a
// *log.Logger, such as http.Server.ErrorLog.
package logging
