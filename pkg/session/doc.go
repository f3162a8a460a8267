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

// Package session provides a uniform blocking command-execution channel to a
// local or remote target host.
//
// All execution is synchronous: a call returns only after the process has
// terminated and its output is fully buffered in memory. There is no
// streaming and no partial delivery.
//
// Two implementations exist behind the Session interface:
//
//   - LocalSession runs commands through the local shell
//   - SSHSession runs commands on a remote host over SSH, one remote
//     session per command
//
// Run returns the exit code for the caller to inspect; RunVerified treats a
// non-zero exit code as a *errors.CommandError, the only error class that
// aborts a whole collection run.
package session
