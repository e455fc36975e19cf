package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/researcher10001-hub/bytecity-accounting/internal/application/credentials"
	"github.com/researcher10001-hub/bytecity-accounting/internal/bootstrap"
	"github.com/researcher10001-hub/bytecity-accounting/internal/domain"
	"github.com/researcher10001-hub/bytecity-accounting/internal/infrastructure/security"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the users table from a CSV file",
	Long: "Replaces every row of the users table with the rows of a CSV file. The first CSV " +
		"row is the header. With --plaintext the third column holds passwords, which are hashed " +
		"with the configured algorithm before loading.",
	RunE: runSeed,
}

var (
	seedCSV       string
	seedPlaintext bool
)

func init() {
	seedCmd.Flags().StringVar(&seedCSV, "csv", "", "Path to users CSV file (required)")
	seedCmd.Flags().BoolVar(&seedPlaintext, "plaintext", false, "Hash the password column before loading")

	if err := seedCmd.MarkFlagRequired("csv"); err != nil {
		panic(fmt.Sprintf("failed to mark csv flag as required: %v", err))
	}

	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	f, err := os.Open(seedCSV)
	if err != nil {
		return fmt.Errorf("failed to open csv: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := readRows(f)
	if err != nil {
		return err
	}

	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if seedPlaintext {
		hasher, err := security.NewHasher(cfg.HashAlgorithm)
		if err != nil {
			return err
		}
		if err := hashPasswords(rows, hasher); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	store, cleanup, err := bootstrap.OpenStore(ctx, cfg, deps)
	if err != nil {
		return err
	}
	defer cleanup()

	r, ok := store.(bootstrap.TableReplacer)
	if !ok {
		return fmt.Errorf("row store driver %q does not support seeding", cfg.RowStoreDriver)
	}
	if err := r.ReplaceTable(ctx, cfg.UsersTable, rows); err != nil {
		return fmt.Errorf("failed to load table %q: %w", cfg.UsersTable, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "loaded %d users into %q\n", len(rows)-1, cfg.UsersTable)
	return nil
}

// readRows parses a users CSV. Rows may have differing field counts; the
// header must cover at least the password column.
func readRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, errors.New("csv is empty")
	}
	if len(rows[domain.HeaderRow]) <= domain.ColPasswordHash {
		return nil, fmt.Errorf("csv header needs at least %d columns", domain.ColPasswordHash+1)
	}
	return rows, nil
}

// hashPasswords replaces the password column of every data row in place.
func hashPasswords(rows [][]string, hasher credentials.Hasher) error {
	for i := domain.HeaderRow + 1; i < len(rows); i++ {
		rec := domain.RecordFromRow(i, rows[i])
		if rec.Email == "" || rec.PasswordHash == "" {
			return fmt.Errorf("csv row %d: email and password are required with --plaintext", i+1)
		}
		h, err := hasher.Hash(rec.Email, rec.PasswordHash)
		if err != nil {
			return fmt.Errorf("csv row %d: %w", i+1, err)
		}
		rows[i][domain.ColPasswordHash] = h
	}
	return nil
}
