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

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitter-badger/seax/internal/config"
)

var cfg = &config.Config{}

var rootCmd = &cobra.Command{
	Use:   "secd",
	Short: "A SECD machine for a small Scheme dialect",
	Long: `secd drives a four-register (Stack/Environment/Control/Dump) SECD
abstract machine over a small Scheme dialect.

Examples:
  secd run program.scm
  secd repl
  secd serve`,
}

func init() {
	cfg.RegisterFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the root command and returns the process exit code, in
// the teacher's retro-command style of keeping os.Exit out of main.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
