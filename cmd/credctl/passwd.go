package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/bootstrap"
	"github.com/researcher10001-hub/bytecity-accounting/internal/infrastructure/security"
	"github.com/researcher10001-hub/bytecity-accounting/internal/transport/http/response"
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Set a user's password",
	Long:  "Runs the same update as POST /auth/v1/password/change and prints the JSON response. Exits 1 unless the password was updated.",
	RunE:  runPasswd,
}

var (
	passwdEmail    string
	passwdPassword string
)

func init() {
	passwdCmd.Flags().StringVar(&passwdEmail, "email", "", "User email (required)")
	passwdCmd.Flags().StringVar(&passwdPassword, "password", "", "New password (required)")

	for _, name := range []string{"email", "password"} {
		if err := passwdCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(passwdCmd)
}

func runPasswd(cmd *cobra.Command, _ []string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	hasher, err := security.NewHasher(cfg.HashAlgorithm)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, cleanup, err := bootstrap.OpenStore(ctx, cfg, deps)
	if err != nil {
		return err
	}
	defer cleanup()

	updater := credentials.NewUpdater(store, hasher, cfg.UsersTable)
	return changePassword(ctx, cmd.OutOrStdout(), updater, passwdEmail, passwdPassword)
}

type passwordUpdater interface {
	Update(ctx context.Context, req credentials.UpdateRequest) credentials.Result
}

// changePassword prints the response body the HTTP API would return and
// returns the failure, if any, so the process exits non-zero.
func changePassword(ctx context.Context, out io.Writer, u passwordUpdater, email, password string) error {
	res := u.Update(ctx, credentials.UpdateRequest{Email: email, NewPassword: password})

	body := response.Body{Status: response.StatusSuccess, Message: res.Message}
	if !res.OK() {
		body.Status = response.StatusError
	}
	if err := json.NewEncoder(out).Encode(body); err != nil {
		return err
	}
	return res.Err()
}
