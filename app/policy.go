package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/adcu-admin/adcu-admin/internal/auth"
)

// ErrUnknownFormat is returned for a --format other than yaml or json.
var ErrUnknownFormat = errors.New("unknown output format")

func init() { //nolint: gochecknoinits
	policyCmd.Flags().StringVar(&policyFormat, "format", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(policyCmd)
}

var (
	policyFormat string

	policyCmd = &cobra.Command{
		Use:   "policy",
		Short: "Print the role permission matrix",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writePolicy(cmd.OutOrStdout(), policyFormat)
		},
	}
)

// writePolicy encodes auth.Matrix to w.
func writePolicy(w io.Writer, format string) error {
	rows := auth.Matrix()

	switch format {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2) //nolint:mnd

		if err := enc.Encode(rows); err != nil {
			return err
		}

		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rows)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
