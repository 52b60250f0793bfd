package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

// Output formats for transcript-printing commands.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// transcript is the structured form of a conversation.
type transcript struct {
	Document string         `json:"document,omitempty" yaml:"document,omitempty"`
	Upload   string         `json:"upload,omitempty" yaml:"upload,omitempty"`
	Entries  []domain.Entry `json:"entries" yaml:"entries"`
}

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}

// writeTranscript prints t in the requested format.
func writeTranscript(w io.Writer, t transcript, format string) error {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal transcript: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			return fmt.Errorf("failed to marshal transcript: %w", err)
		}
		return enc.Close()
	default:
		for _, e := range t.Entries {
			if _, err := fmt.Fprintln(w, e.String()); err != nil {
				return err
			}
		}
		return nil
	}
}
