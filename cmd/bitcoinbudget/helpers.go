package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nostrgamer/bitcoinbudget/internal/cli"
	"github.com/nostrgamer/bitcoinbudget/internal/config"
	"github.com/nostrgamer/bitcoinbudget/internal/kv"
	"github.com/nostrgamer/bitcoinbudget/internal/ledger"
	"github.com/nostrgamer/bitcoinbudget/internal/sats"
	"github.com/nostrgamer/bitcoinbudget/internal/store"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// openLedger opens the database and vault session and returns the ledger
// service. The returned cleanup closes both.
func openLedger(ctx context.Context) (*ledger.Service, func(), error) {
	db, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}

	password, err := resolvePassword()
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	sess, err := store.OpenSession(ctx, db, password)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	cleanup := func() {
		sess.Close()
		_ = db.Close()
	}
	return ledger.New(db, sess), cleanup, nil
}

func openDB(ctx context.Context) (*kv.DB, error) {
	dbPath := config.ExpandPath(viper.GetString("db"))
	db, err := kv.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", dbPath, err)
	}
	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// resolvePassword takes the password from BITCOINBUDGET_PASSWORD if set,
// otherwise prompts on the terminal without echo.
func resolvePassword() (string, error) {
	if pw := viper.GetString("password"); pw != "" {
		return pw, nil
	}
	return promptPassword("Password: ")
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimSpace(string(raw))
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

// parseAmount accepts either plain sats ("150000") or a BTC decimal with a
// btc suffix ("0.0015btc").
func parseAmount(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if cut, ok := strings.CutSuffix(s, "btc"); ok {
		return sats.ParseBTC(cut)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q (use sats, or a btc suffix like 0.01btc)", s)
	}
	return v, nil
}

// formatAmount renders a sats amount with sign coloring for tables.
func formatAmount(v int64) string {
	text := sats.FormatSats(v)
	if v < 0 {
		return cli.AmountNegativeStyle.Render(text)
	}
	if v > 0 {
		return cli.AmountPositiveStyle.Render(text)
	}
	return text
}

func boolMark(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
