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
	"github.com/spf13/cobra"

	"github.com/gitter-badger/seax/internal/replsrv"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the scheme_eval MCP tool server on stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return replsrv.New(cfg).Serve()
	},
}
