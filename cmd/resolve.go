package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errUnresolved = errors.New("uri could not be resolved")

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <uri>",
		Short: "Resolves a single URI and prints its metadata",
		Long: `Runs one resolution and prints the same JSON document GET /fetch would
return. A URI that cannot be resolved prints null and exits non-zero.`,
		Args: cobra.ExactArgs(1),
		RunE: runResolveCommand,
	}
}

func runResolveCommand(cmd *cobra.Command, args []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	defer appInstance.Close()
	uri := args[0]

	meta, err := appInstance.GetResolver().Resolve(cmd.Context(), uri)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "null")
		return fmt.Errorf("%w: %s", errUnresolved, uri)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	return nil
}
