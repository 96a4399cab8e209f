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

	"github.com/go-pwsafe/pwsafe/record"
	"github.com/go-pwsafe/pwsafe/safe"
	"github.com/spf13/cobra"
)

func newGetCmd(flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print one matching record",
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

			rec, err := findRecord(s.Records(), flags)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderFields(rec, flags.display))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&flags.display, "display", nil, "field to display (repeatable)")
	cmd.Flags().StringVar(&flags.uuid, "uuid", "", "match by record UUID")
	cmd.Flags().StringVar(&flags.title, "title", "", "match by record title")
	return cmd
}

// findRecord resolves --uuid or --title against a record set, failing
// with a user-visible "no match" error if neither is found.
func findRecord(records *record.Set, flags *cliFlags) (*record.Record, error) {
	if flags.uuid != "" {
		for _, rec := range records.All() {
			u, ok, err := rec.UUID()
			if err != nil {
				return nil, err
			}
			if ok && u.String() == flags.uuid {
				return rec, nil
			}
		}
		return nil, fmt.Errorf("no record with UUID %q", flags.uuid)
	}
	if flags.title != "" {
		for _, rec := range records.All() {
			if title, ok := rec.Title(); ok && title == flags.title {
				return rec, nil
			}
		}
		return nil, fmt.Errorf("no record with title %q", flags.title)
	}
	return nil, fmt.Errorf("specify --uuid or --title to select a record")
}
