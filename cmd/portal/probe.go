package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"codeberg.org/capworks/portal/internal/apiclient"
	"codeberg.org/capworks/portal/internal/config"
	"codeberg.org/capworks/portal/internal/console"
	"codeberg.org/capworks/portal/internal/presenter"
	"github.com/spf13/cobra"
)

func newProbeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "probe METHOD PATH [BODY]",
		Short: "Send one API request and show how its error would be presented",
		Example: `  portal probe GET /api/v1/reports --login employer@acme.test:employer
  portal probe PUT /api/v1/profile '{"phone":"abc"}' --token "$TOKEN"`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadEnvironmentVariables()
			if err != nil {
				return err
			}

			deriver, err := newDeriver(cmd, cfg)
			if err != nil {
				return err
			}

			method := strings.ToUpper(args[0])
			path := args[1]

			var body any
			if len(args) == 3 {
				if !json.Valid([]byte(args[2])) {
					return fmt.Errorf("request body is not valid JSON")
				}
				body = json.RawMessage(args[2])
			}

			session := presenter.NewSession()
			client := apiclient.New(cfg.APIEndpoint, cfg.RequestTimeout, session)
			out := cmd.OutOrStdout()

			printer := console.NewPrinter(out)
			dispatcher := presenter.NewDispatcher(deriver, presenter.Collaborators{
				Notifier:  printer,
				Navigator: printer,
				Session:   session,
				Modal:     printer,
			})

			token, _ := cmd.Flags().GetString("token")
			session.SetToken(token)

			if login, _ := cmd.Flags().GetString("login"); login != "" {
				email, password, ok := strings.Cut(login, ":")
				if !ok {
					return fmt.Errorf("--login expects EMAIL:PASSWORD")
				}

				resp, err := client.Login(cmd.Context(), email, password)
				if err != nil {
					dispatcher.Dispatch(cmd.Context(), err)
					return fmt.Errorf("login failed")
				}

				session.SetToken(resp.Token)
				session.Observe(resp.User)
			}

			// the employer email comes from the acting user
			if session.Authorized() && session.CurrentUser() == nil {
				if user, err := client.Me(cmd.Context()); err == nil {
					session.Observe(user)
				}
			}

			var result json.RawMessage
			err = client.Do(cmd.Context(), method, path, body, &result)
			if err != nil {
				action := dispatcher.Dispatch(cmd.Context(), err)
				fmt.Fprintf(out, "%s (status %d)\n", action.Kind, action.Status) //nolint:errcheck
				return nil
			}

			fmt.Fprintf(out, "ok\n%s\n", result) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().String("token", "", "Bearer token to send")
	cmd.Flags().String("login", "", "Log in first with EMAIL:PASSWORD")

	return cmd
}
