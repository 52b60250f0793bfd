package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a document for processing",
	Long: `Uploads a document to the backend, which extracts and indexes its text.

Only the document types listed in documents.accepted_types are accepted
(PDF by default). The type is detected from the file contents.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	if uploadController == nil {
		return errServicesNotConfigured
	}

	status, err := selectAndUpload(cmd.Context(), uploadController, args[0])
	if err != nil {
		return err
	}

	cmd.Println(status.String())
	return nil
}

// errUploadFailed marks an upload the backend attempted and rejected.
var errUploadFailed = errors.New("upload failed")

// selectAndUpload selects path and uploads it, turning a failed upload into an error.
func selectAndUpload(ctx context.Context, uploads driving.UploadController, path string) (domain.UploadStatus, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	doc, err := uploads.SelectDocument(path)
	if err != nil {
		return domain.UploadStatus{}, err
	}

	status, err := uploads.SubmitUpload(ctx)
	if err != nil {
		return status, fmt.Errorf("upload %s: %w", doc.Name, err)
	}
	if status.State == domain.UploadFailed {
		return status, fmt.Errorf("%w: %s", errUploadFailed, status.Message)
	}
	return status, nil
}
