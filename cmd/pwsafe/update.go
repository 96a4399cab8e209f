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

func newUpdateCmd(flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update fields on a matching record",
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

			changed := false
			if flags.username != "" {
				rec.SetUsername(flags.username)
				changed = true
			}
			if flags.password != "" {
				rec.SetPassword(flags.password)
				changed = true
			}
			if flags.url != "" {
				rec.SetURL(flags.url)
				changed = true
			}
			if flags.email != "" {
				rec.SetEmail(flags.email)
				changed = true
			}
			if flags.group != "" {
				rec.SetGroup(flags.group)
				changed = true
			}
			if flags.expires != "" {
				t, err := parseExpires(flags.expires)
				if err != nil {
					return fmt.Errorf("--expires: %w", err)
				}
				rec.SetExpiryTime(t)
				changed = true
			}
			if !changed {
				return fmt.Errorf("no fields to update were given")
			}

			logHook(flags, "updated record %q", flags.title)
			return s.Save(false)
		},
	}
	cmd.Flags().StringVar(&flags.uuid, "uuid", "", "match by record UUID")
	cmd.Flags().StringVar(&flags.title, "title", "", "match by record title")
	cmd.Flags().StringVar(&flags.username, "username", "", "new username")
	cmd.Flags().StringVar(&flags.password, "password", "", "new password")
	cmd.Flags().StringVar(&flags.url, "url", "", "new URL")
	cmd.Flags().StringVar(&flags.email, "email", "", "new email address")
	cmd.Flags().StringVar(&flags.group, "group", "", "new group")
	cmd.Flags().StringVar(&flags.expires, "expires", "", `new expiration time, "YYYY-MM-DD HH:MM"`)
	return cmd
}
