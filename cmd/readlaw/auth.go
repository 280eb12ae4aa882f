package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nttrung2406/readlaw-cli/internal/api"
)

// promptPassword reads a password without echoing it.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(pw)), nil
}

func loginCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			token, err := rt.client.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			if err := rt.store.SetToken(token); err != nil {
				return err
			}

			fmt.Println("Logged in.")
			return nil
		},
	}
}

func signupCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "signup <username> <email>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}

			message, err := rt.client.Signup(cmd.Context(), args[0], args[1], password)
			if err != nil {
				var ve *api.ValidationError
				if errors.As(err, &ve) && ve.Kind == api.ValidationField {
					fmt.Fprintln(os.Stderr, "signup rejected:")
					for _, f := range ve.Fields {
						fmt.Fprintf(os.Stderr, "  %s: %s\n", f.Loc, f.Msg)
					}
					os.Exit(1)
				}
				return err
			}

			fmt.Println(message)
			return nil
		},
	}
}

func logoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Destroy the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.store.Clear(); err != nil {
				return err
			}
			fmt.Println("Logged out.")
			return nil
		},
	}
}
