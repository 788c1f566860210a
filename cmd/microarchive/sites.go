package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSitesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List the sites in the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(os.Stderr)
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			sites, err := a.sites.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tDOMAIN\tSTATUS\tCREATED")
			for _, s := range sites {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", s.ID, s.Name, s.Domain, s.Status, s.CreatedAt.Format("2006-01-02 15:04"))
			}
			return tw.Flush()
		},
	}
}
