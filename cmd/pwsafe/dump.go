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
	"fmt"

	"github.com/go-pwsafe/pwsafe/safe"
	"github.com/spf13/cobra"
)

func newDumpCmd(flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every record in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(flags); err != nil {
				return err
			}
			password, err := promptMasterPassword()
			if err != nil {
				return err
			}
			s, err := safe.Open(flags.file, []byte(password), safe.ReadOnly)
			if err != nil {
				return err
			}
			defer s.Close()

			logHook(flags, "loaded %d records from %s", s.Records().Len(), flags.file)
			for _, rec := range s.Records().All() {
				fmt.Fprint(cmd.OutOrStdout(), renderFields(rec, flags.display))
				fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&flags.display, "display", nil, "field to display (repeatable)")
	return cmd
}
