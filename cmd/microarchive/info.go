package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newInfoCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the stored metadata of a site",
		Long: `Print the metadata snapshot stored with a published site as YAML. The output
can be edited and passed back with publish --data-from-file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(os.Stderr)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			meta, err := a.service.Info(cmd.Context(), key)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(meta)
			if err != nil {
				return fmt.Errorf("failed to encode metadata: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Site key")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}
