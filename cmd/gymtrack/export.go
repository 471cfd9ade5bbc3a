package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/2beens/gymtrack/internal/gymtrack/model"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all routines and workouts",
		Long: `Export all routines and workouts of the selected storage.

FORMATS:

  json   the sync bundle, as uploaded to and downloaded from the server
  yaml   the same document, easier to read

EXAMPLES:

  gymtrack export                       # JSON to stdout
  gymtrack export --format yaml -o gym.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bundle, err := a.provider().Export(cmd.Context())
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			data, err := encodeBundle(bundle, format)
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o600); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			green.Fprintf(cmd.OutOrStdout(), "✓ Exported %d routines and %d workouts to %s\n",
				len(bundle.Routines), len(bundle.Workouts), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import routines and workouts from an export file",
		Long: `Import a JSON or YAML export into the selected storage.

Locally, entries keep their ids and replace entries with the same id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			bundle, err := decodeBundle(data, formatOf(args[0]))
			if err != nil {
				return err
			}
			if err := a.provider().Import(cmd.Context(), *bundle); err != nil {
				return fmt.Errorf("import: %w", err)
			}
			green.Fprintf(cmd.OutOrStdout(), "✓ Imported %d routines and %d workouts\n", len(bundle.Routines), len(bundle.Workouts))
			return nil
		},
	}
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// encodeBundle renders the YAML form from the JSON one, so both use the same keys.
func encodeBundle(bundle *model.SyncBundle, format string) ([]byte, error) {
	raw, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal bundle: %w", err)
	}

	switch format {
	case "json":
		return append(raw, '\n'), nil
	case "yaml":
		var doc any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		return yaml.Marshal(doc)
	}
	return nil, fmt.Errorf("unknown format: %s (use json or yaml)", format)
}

func decodeBundle(data []byte, format string) (*model.SyncBundle, error) {
	if format == "yaml" {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		var err error
		if data, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
	}

	bundle := &model.SyncBundle{}
	if err := json.Unmarshal(data, bundle); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	return bundle, nil
}
