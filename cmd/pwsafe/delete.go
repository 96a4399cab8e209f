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
	"github.com/go-pwsafe/pwsafe/safe"
	"github.com/spf13/cobra"
)

func newDeleteCmd(flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a matching record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(flags); err != nil {
				return err
			}
			password, err := promptMasterPassword()
			if err != nil {
				return err
			}
			s, err := safe.Open(flags.file, []byte(password), safe.ReadWrite)
			if err != nil {
				return err
			}
			defer s.Close()

			rec, err := findRecord(s.Records(), flags)
			if err != nil {
				return err
			}
			u, _, err := rec.UUID()
			if err != nil {
				return err
			}
			if err := s.Records().Remove(u); err != nil {
				return err
			}
			logHook(flags, "deleted record %s", u)
			return s.Save(false)
		},
	}
	cmd.Flags().StringVar(&flags.uuid, "uuid", "", "match by record UUID")
	cmd.Flags().StringVar(&flags.title, "title", "", "match by record title")
	return cmd
}
