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
	"os"

	"github.com/go-pwsafe/pwsafe/safe"
	"github.com/spf13/cobra"
)

func newInitCmd(flags *cliFlags) *cobra.Command {
	var dbname, dbdesc, username string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new, empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFile(flags); err != nil {
				return err
			}
			if _, err := os.Stat(flags.file); err == nil {
				return fmt.Errorf("%s already exists", flags.file)
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

			if dbname != "" {
				s.Headers().SetDatabaseName(dbname)
			}
			if dbdesc != "" {
				s.Headers().SetDatabaseDescription(dbdesc)
			}
			if username != "" {
				s.Headers().SetLastSaveUser(username, false)
			}
			logHook(flags, "initializing new database at %s", flags.file)
			// Auto-metadata was already applied when the new safe was
			// created; refreshing it here would overwrite --username.
			return s.Save(true)
		},
	}
	cmd.Flags().StringVar(&dbname, "dbname", "", "database display name")
	cmd.Flags().StringVar(&dbdesc, "dbdesc", "", "database description")
	cmd.Flags().StringVar(&username, "username", "", "last-saved-by user to record")
	return cmd
}
