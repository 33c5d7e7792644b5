package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func routesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List the navigation table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := newTable()
			if err != nil {
				return err
			}

			tw := tablewriter.NewWriter(cmd.OutOrStdout())
			tw.SetAutoWrapText(false)
			tw.SetHeader([]string{"Path", "Name", "Title"})
			for _, route := range table.Routes() {
				tw.Append([]string{route.Path, route.Name, route.Title})
			}
			tw.Render()

			return nil
		},
	}
}
