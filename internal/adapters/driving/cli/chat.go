package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docchat/internal/core/domain"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// maxLineBytes bounds a single REPL input line.
const maxLineBytes = 1 << 20

var chatFile string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a line-oriented conversation",
	Long: `Reads questions from standard input, one per line, and prints each answer.

Commands:
  /upload PATH  Select and upload a document
  /status       Show the selected document and upload status
  /help         Show this help
  /quit         Leave the conversation

A prompt is shown only when standard input is a terminal, so questions can
also be piped in from a file.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatFile, "file", "f", "", "upload this document before chatting")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if uploadController == nil || conversationController == nil {
		return errServicesNotConfigured
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repl := &chatREPL{
		out:          cmd.OutOrStdout(),
		uploads:      uploadController,
		conversation: conversationController,
		seen:         len(conversationController.Entries()),
	}

	if chatFile != "" {
		if err := repl.upload(ctx, chatFile); err != nil {
			return err
		}
	}

	in := cmd.InOrStdin()
	interactive := isTerminal(in)
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for {
		if interactive {
			fmt.Fprint(repl.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if quit := repl.handle(ctx, scanner.Text()); quit {
			return nil
		}
	}
	return scanner.Err()
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// chatREPL prints transcript entries as they are appended.
type chatREPL struct {
	out          io.Writer
	uploads      driving.UploadController
	conversation driving.ConversationController
	seen         int
}

// handle processes one input line. It returns true when the user quits.
func (r *chatREPL) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if strings.HasPrefix(line, "/") {
		name, arg, _ := strings.Cut(line, " ")
		switch name {
		case "/quit", "/exit":
			return true
		case "/help":
			fmt.Fprintln(r.out, "Commands: /upload PATH, /status, /help, /quit")
		case "/status":
			r.status()
		case "/upload":
			if strings.TrimSpace(arg) == "" {
				fmt.Fprintln(r.out, "Usage: /upload PATH")
				break
			}
			_ = r.upload(ctx, strings.TrimSpace(arg))
		default:
			fmt.Fprintf(r.out, "Unknown command %s (try /help)\n", name)
		}
		return false
	}

	if _, err := r.conversation.Ask(ctx, line); err != nil {
		fmt.Fprintf(r.out, "Not sent: %v\n", err)
		return false
	}
	r.printNew()
	return false
}

// upload selects and uploads path, printing the resulting status.
func (r *chatREPL) upload(ctx context.Context, path string) error {
	status, err := selectAndUpload(ctx, r.uploads, path)
	switch {
	case errors.Is(err, errUploadFailed):
		fmt.Fprintln(r.out, status.String())
		return err
	case err != nil:
		fmt.Fprintf(r.out, "Cannot upload: %v\n", err)
		return err
	}
	fmt.Fprintln(r.out, status.String())
	r.printNew()
	return nil
}

func (r *chatREPL) status() {
	doc, ok := r.uploads.SelectedDocument()
	if ok {
		fmt.Fprintf(r.out, "Document: %s\n", doc)
	} else {
		fmt.Fprintln(r.out, "Document: (none)")
	}
	status := r.uploads.Status()
	if status.State == domain.UploadIdle {
		fmt.Fprintln(r.out, "Upload:   not uploaded")
	} else {
		fmt.Fprintf(r.out, "Upload:   %s\n", status)
	}
	fmt.Fprintf(r.out, "Entries:  %d\n", len(r.conversation.Entries()))
}

// printNew prints entries appended since the last call, skipping the
// user's own questions.
func (r *chatREPL) printNew() {
	entries := r.conversation.Entries()
	for _, e := range entries[min(r.seen, len(entries)):] {
		if e.Kind != domain.EntryUser {
			fmt.Fprintln(r.out, e.String())
		}
	}
	r.seen = len(entries)
}
