package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"codeberg.org/capworks/portal/internal/console"
	"codeberg.org/capworks/portal/internal/presenter"
	"github.com/spf13/cobra"
)

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain FILE",
		Short: "Show the messages an error payload turns into",
		Long: `Derives the display messages for the JSON error payload in FILE, as the
client would for a validation response. Use - to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read payload: %w", err)
			}

			deriver, err := newDeriver(cmd, nil)
			if err != nil {
				return err
			}

			role, _ := cmd.Flags().GetString("role")
			employerEmail, _ := cmd.Flags().GetString("employer-email")
			asJSON, _ := cmd.Flags().GetBool("json")

			payload, err := presenter.ParsePayload(data)
			if err != nil {
				// the client shows the fallback for unreadable payloads too
				payload = nil
			}

			dc := presenter.DeriveContext{
				User:          &presenter.ActingUser{Role: presenter.Role(role)},
				EmployerEmail: employerEmail,
			}
			messages := deriver.Derive(payload, dc)

			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(messages)
			}

			for _, msg := range messages {
				fmt.Fprintln(out, console.FormatMessage(msg, msg.Severity())) //nolint:errcheck
			}

			return nil
		},
	}

	cmd.Flags().String("role", string(presenter.RoleEmployer), "Role of the acting user (employee, employer, admin)")
	cmd.Flags().String("employer-email", "", "Employer contact email shown to employees")
	cmd.Flags().Bool("json", false, "Print messages as JSON")

	return cmd
}
