// This file is part of secd - https://github.com/gitter-badger/seax
//
// Copyright 2024 The Seax Authors
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

// The secd command is a showcase for packages vm, compiler, and parser:
// a command-line front end exposing run/repl/serve subcommands over the
// SECD Scheme evaluator (§6.4), the way the teacher's retro command is
// the showcase front end for package github.com/db47h/ngaro/vm.
package main

import "os"

func main() {
	os.Exit(Execute())
}
