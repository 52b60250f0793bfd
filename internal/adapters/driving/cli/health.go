package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if healthService == nil {
		return errServicesNotConfigured
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	health, err := healthService.Check(ctx)
	if err != nil {
		return fmt.Errorf("backend %s unreachable: %w", healthService.BaseURL(), err)
	}

	model := "model not ready"
	if health.ModelReady {
		model = "model ready"
	}
	cmd.Printf("Backend: %s\n", healthService.BaseURL())
	cmd.Printf("Status:  %s (%s)\n", health.Status, model)

	if !health.IsHealthy() {
		return fmt.Errorf("backend reports status %q", health.Status)
	}
	return nil
}
