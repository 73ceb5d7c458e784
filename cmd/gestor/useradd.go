package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gestor/internal/auth"
	"gestor/internal/config"
)

var (
	useraddEmail    string
	useraddName     string
	useraddPassword string
)

var useraddCmd = &cobra.Command{
	Use:   "useradd",
	Short: "Register a portal user directly against the store",
	RunE:  runUseradd,
}

func init() {
	useraddCmd.Flags().StringVar(&useraddEmail, "email", "", "user email (required)")
	useraddCmd.Flags().StringVar(&useraddName, "name", "", "display name (required)")
	useraddCmd.Flags().StringVar(&useraddPassword, "password", "", "password, at least 8 characters (required)")
	_ = useraddCmd.MarkFlagRequired("email")
	_ = useraddCmd.MarkFlagRequired("name")
	_ = useraddCmd.MarkFlagRequired("password")
}

func runUseradd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	authSvc, err := auth.NewService(store, auth.Config{
		Secret:     cfg.Auth.Secret,
		TokenTTL:   cfg.Auth.TokenTTL.Std(),
		BcryptCost: cfg.Auth.BcryptCost,
	})
	if err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	user, err := authSvc.Register(cmd.Context(), useraddEmail, useraddName, useraddPassword)
	if err != nil {
		return err
	}
	fmt.Printf("created user %s (%s)\n", user.Email, user.ID)
	return nil
}
