package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gestor/internal/blob"
	"gestor/internal/config"
	"gestor/internal/core"
	"gestor/internal/export"
	"gestor/pkg/domain"
)

var (
	exportModule string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Snapshot a module into the configured blob store",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportModule, "module", "", "module to export: tasks, contacts, minutes or sales (required)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "artifact format: csv or json")
	_ = exportCmd.MarkFlagRequired("module")
}

func runExport(cmd *cobra.Command, args []string) error {
	module, ok := domain.ParseModule(exportModule)
	if !ok {
		return fmt.Errorf("unknown module %q", exportModule)
	}
	format, ok := export.ParseFormat(exportFormat)
	if !ok {
		return fmt.Errorf("unknown format %q", exportFormat)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	blobs, err := blob.Open(cmd.Context(), cfg.Blob)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}

	svc := core.NewService(store, core.WithTeam(cfg.TeamMembers))
	rec, err := export.New(svc, blobs).Run(cmd.Context(), module, format)
	if err != nil {
		return err
	}
	fmt.Printf("exported %s as %s: %s (%d bytes)\n", rec.Module, rec.Format, rec.Key, rec.SizeBytes)
	return nil
}
