package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFormsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List the registered forms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := a.registry(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tENDPOINT\tFIELDS\tTITLE")
			for _, id := range registry.List() {
				form, err := registry.Get(id)
				if err != nil {
					return err
				}
				fm := form.Model()
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", fm.ID, fm.Endpoint, len(fm.Fields), fm.Title)
			}
			return w.Flush()
		},
	}
}
