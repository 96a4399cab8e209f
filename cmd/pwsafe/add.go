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

	"github.com/go-pwsafe/pwsafe/field"
	"github.com/go-pwsafe/pwsafe/record"
	"github.com/go-pwsafe/pwsafe/safe"
	"github.com/spf13/cobra"
)

func newAddCmd(flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new record",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(flags); err != nil {
				return err
			}
			if flags.title == "" || flags.password == "" {
				return fmt.Errorf("--title and --password are required")
			}
			masterPassword, err := promptMasterPassword()
			if err != nil {
				return err
			}
			s, err := safe.Open(flags.file, []byte(masterPassword), safe.ReadWrite)
			if err != nil {
				return err
			}
			defer s.Close()

			rec := record.New()
			rec.SetUUID(field.NewUUID())
			rec.SetTitle(flags.title)
			rec.SetPassword(flags.password)
			if flags.username != "" {
				rec.SetUsername(flags.username)
			}
			if flags.url != "" {
				rec.SetURL(flags.url)
			}
			if flags.email != "" {
				rec.SetEmail(flags.email)
			}
			if flags.group != "" {
				rec.SetGroup(flags.group)
			}
			if flags.expires != "" {
				t, err := parseExpires(flags.expires)
				if err != nil {
					return fmt.Errorf("--expires: %w", err)
				}
				rec.SetExpiryTime(t)
			}

			if err := s.Records().Add(rec); err != nil {
				return err
			}
			logHook(flags, "added record %q", flags.title)
			return s.Save(false)
		},
	}
	addRecordFlags(cmd, flags)
	return cmd
}

func addRecordFlags(cmd *cobra.Command, flags *cliFlags) {
	cmd.Flags().StringVar(&flags.title, "title", "", "record title")
	cmd.Flags().StringVar(&flags.username, "username", "", "record username")
	cmd.Flags().StringVar(&flags.password, "password", "", "record password")
	cmd.Flags().StringVar(&flags.url, "url", "", "record URL")
	cmd.Flags().StringVar(&flags.email, "email", "", "record email address")
	cmd.Flags().StringVar(&flags.group, "group", "", "record group (dot-separated path)")
	cmd.Flags().StringVar(&flags.expires, "expires", "", `expiration time, "YYYY-MM-DD HH:MM"`)
	cmd.Flags().StringVar(&flags.uuid, "uuid", "", "record UUID (update/delete only)")
}
