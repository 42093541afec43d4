package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VasupriyaPatnaik/AI-Redliner/internal/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := session.Reduce(nil, session.SetField{Field: session.FieldEmail, Value: email})
			form = session.Reduce(form, session.SetField{Field: session.FieldPassword, Value: password})

			sess, err := a.sessions.Submit(form)
			if err != nil {
				a.logger.Info("login failed", "email", email, "error", err)
				return err
			}

			a.logger.Info("logged in", "user", sess.User.Username, "session_id", sess.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", sess.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newSignupCmd(a *app) *cobra.Command {
	var username, email, password, confirm string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := session.Reduce(session.LoginState{}, session.ToggleMode{})
			for _, f := range []session.SetField{
				{Field: session.FieldUsername, Value: username},
				{Field: session.FieldEmail, Value: email},
				{Field: session.FieldPassword, Value: password},
				{Field: session.FieldConfirmPassword, Value: confirm},
			} {
				form = session.Reduce(form, f)
			}

			sess, err := a.sessions.Submit(form)
			if err != nil {
				a.logger.Info("signup failed", "username", username, "error", err)
				return err
			}

			a.logger.Info("signed up", "user", sess.User.Username, "session_id", sess.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s!\n", sess.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&confirm, "confirm-password", "", "password again")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.sessions.Logout(); err != nil {
				return err
			}
			a.logger.Info("logged out")
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, _, err := a.authed(cmd.Context())
			if err != nil {
				return err
			}
			sess, _ := session.FromContext(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", sess.User.Username, sess.User.Email)
			return nil
		},
	}
}
