package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"librarymanager/internal/config"
	"librarymanager/internal/platform/crypto"
)

func main() {
	config.LoadEnvFiles()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		userID string
		exp    string
		secret string
	)
	cmd := &cobra.Command{
		Use:          "token",
		Short:        "Mint a bearer token for a user id",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("JWT_SECRET")
			}
			if secret == "" {
				return config.ErrMissingJWTSecret
			}
			ttl, err := parseTTL(exp)
			if err != nil {
				return err
			}
			token, err := crypto.GenerateToken(secret, userID, ttl)
			if err != nil {
				return errors.Wrap(err, "sign token")
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id carried in the userId claim")
	cmd.Flags().StringVar(&exp, "exp", "7d", "lifetime, a Go duration or a whole number of days such as 7d")
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret (defaults to JWT_SECRET)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// parseTTL accepts time.ParseDuration syntax plus an "Nd" day suffix.
func parseTTL(s string) (time.Duration, error) {
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, errors.Errorf("invalid lifetime %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, errors.Errorf("invalid lifetime %q", s)
	}
	return d, nil
}
