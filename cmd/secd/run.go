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

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	secd "github.com/gitter-badger/seax"
	"github.com/gitter-badger/seax/internal/config"
)

var resultStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#065F46", Dark: "#34D399"})

var errorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFFFFF")).
	Background(lipgloss.Color("#EF4444")).
	Padding(0, 1)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile and drive a single source file to its result cell",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := config.NewStderrLogger(cfg)

		source, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		log.Debugf("run: evaluating %s", args[0])
		result, err := secd.Run(string(source), cfg.Options()...)
		if err != nil {
			log.Errorf(err)
			fmt.Println(errorStyle.Render(err.Error()))
			return err
		}

		fmt.Println(resultStyle.Render(result.String()))
		return nil
	},
}
