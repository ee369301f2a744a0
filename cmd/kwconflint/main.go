// Copyright 2026 The kwconf Authors.
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

// Command kwconflint loads a configuration file (or glob) against the
// examplecfg demo grammar and prints a summary, exercising the parser core
// from the command line.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kwconf/kwconf"
	"github.com/kwconf/kwconf/examplecfg"
	"github.com/kwconf/kwconf/kwerr"
	"github.com/kwconf/kwconf/logging"
)

var (
	configID string
	maxLine  int
	verbose  bool

	rootCmd = &cobra.Command{
		Use:          "kwconflint [file-or-glob]",
		Short:        "kwconflint",
		SilenceUsage: true,
		Long:         `kwconflint loads a configuration file against the kwconf example grammar and reports what it parsed.`,
		Args:         cobra.ExactArgs(1),
		RunE:         run,
	}
)

func init() {
	rootCmd.Flags().StringVar(&configID, "config-id", "", "system identifier matched against @id/@^id filter lines")
	rootCmd.Flags().IntVar(&maxLine, "max-line", kwconf.DefaultMaxLen, "maximum line length after macro substitution")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

func run(cmd *cobra.Command, args []string) error {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	log := logging.NewLogrusLogger(logrus.StandardLogger(), "kwconflint")

	b := kwconf.NewBuilder()
	cfg := examplecfg.Register(b)
	tree := b.Build()

	err := kwconf.Load(tree, args[0], kwconf.Options{
		ConfigID:    configID,
		HasConfigID: configID != "",
		MaxLen:      maxLine,
		Log:         log,
	})
	if err != nil {
		return err
	}

	fmt.Println(cfg.String())
	fmt.Printf("%d of %d virtual servers have at least one real server\n", len(cfg.ActiveServers()), len(cfg.Servers))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var fatal *kwerr.FatalConfigError
		if errors.As(err, &fatal) {
			os.Exit(kwerr.ConfigExitCode)
		}
		os.Exit(1)
	}
}
