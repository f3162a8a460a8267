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

package defaults

import (
	"io/fs"
	"time"
)

// Target connection defaults.
const (
	// LocalHostname is the distinguished hostname that selects in-process
	// execution and bypasses all credential and timeout handling.
	LocalHostname = "local"

	// Username is the remote account used when none is given.
	Username = "root"

	// SSHPort is the TCP port used for remote sessions.
	SSHPort = 22

	// ConnectTimeout applies at connection establishment only; individual
	// commands are not subject to it.
	ConnectTimeout = 8 * time.Second

	// KillWaitDelay bounds how long a canceled local command is waited on
	// after the kill, in case grandchildren keep the output pipes open.
	KillWaitDelay = 3 * time.Second
)

// KeySearchPaths are the private-key locations, relative to the user home
// directory, probed in order when no key path is given.
var KeySearchPaths = []string{
	".ssh/id_rsa",
	".ssh/id_ecdsa",
	".ssh/id_ed25519",
}

// On-disk layout conventions for the snapshot tree.
const (
	// DirMode is the permission mode for snapshot directories.
	DirMode fs.FileMode = 0o755

	// FileMode is the permission mode for snapshot files.
	FileMode fs.FileMode = 0o644

	// StdoutFilename holds a command capture's standard output.
	StdoutFilename = "stdout.txt"

	// StderrFilename holds a command capture's standard error. The file is
	// created even when the stream is empty.
	StderrFilename = "stderr.txt"

	// ManifestExtension is appended to the module name for manifest files.
	ManifestExtension = ".yaml"
)

// Target-host commands issued by the collectors.
const (
	// TopologyCommand lists logical CPU numbers, one per line, with
	// comment lines prefixed by '#'. Its output order defines the
	// canonical CPU ordering for register dumps.
	TopologyCommand = "lscpu -p=cpu"

	// MSRDevicePathFmt is the per-CPU MSR device node, parameterized by
	// the logical CPU number.
	MSRDevicePathFmt = "/dev/cpu/%d/msr"

	// MSRReadCommandFmt reads one register on one CPU. The first verb is
	// the register address in hex, the second the logical CPU number.
	MSRReadCommandFmt = "rdmsr %#x -p %d"
)
