package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

var (
	askFile   string
	askFormat string
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question",
	Long: `Asks the backend one question about the processed document and prints
the exchange.

With --file the document is uploaded first; otherwise the backend answers
from whatever it processed last.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "upload this document before asking")
	askCmd.Flags().StringVarP(&askFormat, "format", "o", formatText, "output format: text, json or yaml")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if uploadController == nil || conversationController == nil {
		return errServicesNotConfigured
	}
	if err := validateFormat(askFormat); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if askFile != "" {
		if _, err := selectAndUpload(ctx, uploadController, askFile); err != nil {
			return err
		}
	}

	entry, err := conversationController.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	t := transcript{
		Upload:  uploadController.Status().String(),
		Entries: conversationController.Entries(),
	}
	if doc, ok := uploadController.SelectedDocument(); ok {
		t.Document = doc.Name
	}
	if err := writeTranscript(cmd.OutOrStdout(), t, askFormat); err != nil {
		return err
	}

	if entry.Kind == domain.EntryError {
		return fmt.Errorf("question failed: %s", entry.Text)
	}
	return nil
}
