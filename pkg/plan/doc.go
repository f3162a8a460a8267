// Copyright (c) 2026, the hostsnap authors.  All rights reserved.
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

// Package plan defines the declarative collection plan: what to gather from
// a target host and where to place it in the snapshot tree.
//
// A plan is an ordered list of modules. Each module carries three kinds of
// captures, forming a closed variant set:
//
//   - CommandCapture: run a command verbatim, keep stdout and stderr
//   - FileCapture: run a generator command whose combined output encodes
//     many files' worth of content, keep the blob verbatim
//   - RegisterBatch: sample a fixed list of MSR addresses on every logical
//     CPU, one output line per CPU
//
// Module order and capture order within a module are collection order and
// must be preserved for reproducibility. Plans can come from the built-in
// Default() or be loaded from a YAML file with Load().
//
// The manifest for a finished snapshot is derived from a module's plan with
// BuildManifest: an explicit transform that prefixes every dirname with the
// module name and strips collection-time implementation details.
package plan
