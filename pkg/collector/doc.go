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

// Package collector provides the strategies that turn a declarative capture
// descriptor into files on disk, given a Session and an output directory.
//
// # Core Interface
//
// The Collector interface defines a single method for gathering data:
//
//	type Collector interface {
//	    Collect(ctx context.Context) error
//	}
//
// All collectors support context-based cancellation.
//
// # Factory Pattern
//
// The Factory interface enables dependency injection and testing by
// abstracting collector creation:
//
//	factory := collector.NewDefaultFactory(sess)
//	c := factory.CreateCommandCollector(capture, moduleDir)
//	if err := c.Collect(ctx); err != nil { ... }
//
// # Available Collectors
//
// Command: runs a command verbatim through a verified session call and
// writes stdout.txt and stderr.txt under the capture's directory. The
// stderr file is always created, even when empty, so consumers can rely on
// a uniform two-file contract.
//
// InlineFile: runs a generator command whose combined stdout encodes many
// files' worth of content and keeps the blob byte-for-byte.
//
// MSR: enumerates the target's logical CPUs, then samples every configured
// register address on every CPU, producing exactly one output line per CPU.
// A failed register read is an expected, CPU-model-dependent condition: the
// address is skipped silently and the batch continues.
//
// # Error Handling
//
// Only verified command failures (and context cancellation) propagate out
// of a collector. Individual register-read failures never do.
package collector
