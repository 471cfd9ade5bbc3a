package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/2beens/gymtrack/internal/gymtrack/cloud"
)

type credentialFlags struct {
	email    string
	password string
	name     string
}

func (c *credentialFlags) bind(cmd *cobra.Command, withName bool) {
	cmd.Flags().StringVar(&c.email, "email", "", "account email")
	cmd.Flags().StringVar(&c.password, "password", "", "account password (default: $GYMTRACK_PASSWORD, then read from stdin)")
	if withName {
		cmd.Flags().StringVar(&c.name, "name", "", "display name")
	}
}

func (c *credentialFlags) resolve(in io.Reader) error {
	if c.email == "" {
		return errors.New("--email is required")
	}
	if c.password == "" {
		c.password = os.Getenv("GYMTRACK_PASSWORD")
	}
	if c.password == "" {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read password: %w", err)
		}
		c.password = strings.TrimRight(line, "\r\n")
	}
	if c.password == "" {
		return errors.New("password is required")
	}
	return nil
}

func newRegisterCmd(a *app) *cobra.Command {
	creds := &credentialFlags{}
	cmd := &cobra.Command{
		Use:         "register",
		Short:       "Create an account on the server and sign in",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOwnStorage: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := creds.resolve(cmd.InOrStdin()); err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			session, err := client.Register(cmd.Context(), creds.email, creds.password, creds.name)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			return a.signedIn(cmd, session)
		},
	}
	creds.bind(cmd, true)
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	creds := &credentialFlags{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the server",
		Long: `Sign in to the gymtrack server and store the session token in the CLI config.

EXAMPLES:

  gymtrack login --server https://gym.example.com --email me@example.com
  gymtrack --storage cloud stats`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOwnStorage: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := creds.resolve(cmd.InOrStdin()); err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			session, err := client.Login(cmd.Context(), creds.email, creds.password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			return a.signedIn(cmd, session)
		},
	}
	creds.bind(cmd, false)
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "End the session and forget the token",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationOwnStorage: "true"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.config.Token == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}

			// the token is dropped locally even when the server can't be reached
			var err error
			if client, clientErr := a.client(); clientErr == nil {
				if logoutErr := client.Logout(cmd.Context()); logoutErr != nil && !errors.Is(logoutErr, cloud.ErrUnauthorized) {
					err = multierr.Append(err, fmt.Errorf("logout: %w", logoutErr))
				}
			}

			a.config.Token = ""
			err = multierr.Append(err, a.saveConfig())
			if err == nil {
				green.Fprintln(cmd.OutOrStdout(), "✓ Signed out")
			}
			return err
		},
	}
}

func (a *app) signedIn(cmd *cobra.Command, session *cloud.Session) error {
	a.config.Token = session.Token
	if err := a.saveConfig(); err != nil {
		return err
	}
	green.Fprintf(cmd.OutOrStdout(), "✓ Signed in as %s\n", session.User.Email)
	if a.config.StorageMode == "" || a.config.StorageMode == "local" {
		faint.Fprintln(cmd.OutOrStdout(), "  use --storage cloud, or set storage_mode in "+a.configPath)
	}
	return nil
}
