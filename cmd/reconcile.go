package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"blitz-stats/core/reconcile"
	"blitz-stats/feature/maps"
	"blitz-stats/feature/tankopedia"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags shared by reconcile subcommands
	sourcePath string
	objectKey  string
	dryRun     bool
	yesConfirm bool
)

// reconcileCmd is the parent command for all reconcile operations.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile a reference catalog against a fresh API response",
	Long: `Reconcile merges a fresh API response into the stored catalog snapshot.
New keys are added, changed keys are updated, and keys missing from the
response are kept.`,
}

var tankopediaReconcileCmd = &cobra.Command{
	Use:   "tankopedia",
	Short: "Reconcile the vehicle catalog",
	Long: `Reconcile the vehicle catalog from a vehicles API response.

Examples:
  # Preview changes from a local file
  reconcile tankopedia --source vehicles.json --dry-run

  # Apply a response stored in the bucket
  reconcile tankopedia --object raw/vehicles.json --yes`,
	RunE: runTankopediaReconcile,
}

var mapsReconcileCmd = &cobra.Command{
	Use:   "maps",
	Short: "Reconcile the map catalog",
	Long: `Reconcile the map catalog from a maps API response.

Examples:
  reconcile maps --source maps.json --dry-run
  reconcile maps --source maps.json --yes`,
	RunE: runMapsReconcile,
}

func init() {
	for _, c := range []*cobra.Command{tankopediaReconcileCmd, mapsReconcileCmd} {
		c.Flags().StringVar(&sourcePath, "source", "", "Path to a local API response file")
		c.Flags().StringVar(&objectKey, "object", "", "Object key of an API response in the storage bucket")
		c.Flags().BoolVar(&dryRun, "dry-run", false, "Report the diff without applying it")
		c.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm updates to existing keys (non-interactive)")
		c.MarkFlagsMutuallyExclusive("source", "object")
		c.MarkFlagsOneRequired("source", "object")
		reconcileCmd.AddCommand(c)
	}

	RootCmd.AddCommand(reconcileCmd)
}

// catalog is the part of a reference service the reconcile commands drive.
type catalog[V any] interface {
	Plan(ctx context.Context, fresh *reconcile.Collection[V]) (reconcile.Diff, error)
	Refresh(ctx context.Context, fresh *reconcile.Collection[V]) (reconcile.Diff, error)
}

func runTankopediaReconcile(cmd *cobra.Command, args []string) error {
	cfg, l, rt, err := setupServices(true)
	if err != nil {
		return err
	}

	var src tankopedia.Source = tankopedia.FileSource{Path: sourcePath, Registry: rt.registry}
	if objectKey != "" {
		src = tankopedia.ObjectSource{Client: rt.storage, Bucket: cfg.Storage.Bucket, Key: objectKey, Registry: rt.registry}
	}

	fresh, err := src.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read vehicles: %w", err)
	}
	return runReconcile[tankopedia.Tank](cmd.Context(), l, tankopedia.CollectionName, rt.tanks, fresh)
}

func runMapsReconcile(cmd *cobra.Command, args []string) error {
	cfg, l, rt, err := setupServices(true)
	if err != nil {
		return err
	}

	var src maps.Source = maps.FileSource{Path: sourcePath, Registry: rt.registry}
	if objectKey != "" {
		src = maps.ObjectSource{Client: rt.storage, Bucket: cfg.Storage.Bucket, Key: objectKey, Registry: rt.registry}
	}

	fresh, err := src.Fetch(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read maps: %w", err)
	}
	return runReconcile[maps.Map](cmd.Context(), l, maps.CollectionName, rt.maps, fresh)
}

func runReconcile[V any](ctx context.Context, l *zap.Logger, name string, svc catalog[V], fresh *reconcile.Collection[V]) error {
	l.Info("Planning reconciliation", zap.String("collection", name), zap.Int("fresh", fresh.Len()))
	plan, err := svc.Plan(ctx, fresh)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printDiff(l, name, plan)

	if dryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if plan.Empty() {
		l.Info("Catalog already up to date.")
		return nil
	}

	// Updates overwrite stored values; additions alone need no prompt.
	if len(plan.Updated) > 0 && !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	diff, err := svc.Refresh(ctx, fresh)
	if err != nil {
		return fmt.Errorf("failed to apply reconciliation: %w", err)
	}
	l.Info("Reconciliation applied",
		zap.String("collection", name),
		zap.Int("added", len(diff.Added)),
		zap.Int("updated", len(diff.Updated)),
	)
	return nil
}

// printDiff logs a diff summary and a sample of touched keys.
func printDiff(l *zap.Logger, name string, d reconcile.Diff) {
	l.Info("Reconciliation report",
		zap.String("collection", name),
		zap.Int("added", len(d.Added)),
		zap.Int("updated", len(d.Updated)),
	)

	keys := d.Touched()
	maxShow := 5
	if len(keys) < maxShow {
		maxShow = len(keys)
	}
	for _, k := range keys[:maxShow] {
		l.Info("Sample key", zap.String("key", k))
	}
	if len(keys) > maxShow {
		l.Info("Additional keys not shown", zap.Int("count", len(keys)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm updates to existing entries: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
