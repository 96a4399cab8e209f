// Copyright 2025 The Go-PWSafe Authors
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
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// cliFlags holds the flags shared across subcommands. Cobra gives every
// subcommand its own Command, but this process never logs through a
// package-global: a --verbose/--debug hook is threaded through explicitly
// instead of a process-wide logger singleton.
type cliFlags struct {
	file     string
	verbose  bool
	debug    bool
	email    string
	group    string
	title    string
	username string
	uuid     string
	password string
	url      string
	expires  string
	display  []string
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}

	root := &cobra.Command{
		Use:   "pwsafe",
		Short: "Read and write Password Safe v3 database files",
	}
	root.PersistentFlags().StringVarP(&flags.file, "file", "f", "", "path to the .psafe3 database")
	root.PersistentFlags().BoolVar(&flags.verbose, "verbose", false, "enable verbose logging")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newDumpCmd(flags),
		newGetCmd(flags),
		newInitCmd(flags),
		newAddCmd(flags),
		newDeleteCmd(flags),
		newUpdateCmd(flags),
	)
	return root
}

// logHook prints a line to stderr when verbose or debug logging is on.
// This is the "optional logging hook" the core itself never holds state
// for: every subcommand calls this directly instead of a global logger.
func logHook(flags *cliFlags, format string, args ...interface{}) {
	if !flags.verbose && !flags.debug {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// promptMasterPassword reads the database password from stdin. It is a
// plain line read rather than a hidden-echo terminal prompt: the
// interactive-terminal layer is a CLI concern the core format engine does
// not need to provide.
func promptMasterPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseExpires parses the --expires flag's "YYYY-MM-DD HH:MM" form.
func parseExpires(v string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", v, time.Local)
}

func requireFile(flags *cliFlags) error {
	if flags.file == "" {
		return fmt.Errorf("-f/--file is required")
	}
	return nil
}
