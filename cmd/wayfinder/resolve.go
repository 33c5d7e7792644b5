package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xy-planning-network/wayfinder/nav"
)

func resolveCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Show where navigating to a path ends up",
		Long: `Navigate to path as a visitor would, then print the route it resolved to
and the document title the navigation set.

Exits non-zero when no route matches path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := newTable()
			if err != nil {
				return err
			}

			doc := nav.NewMemoryDocument(title)
			router, err := nav.New(table, nav.WithDocument(doc), nav.WithLogger(newCmdLogger(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}

			navigation, err := router.Push(cmd.Context(), args[0])
			if errors.Is(err, nav.ErrNotFound) {
				return fmt.Errorf("%w: no route matches %s", nav.ErrNotFound, args[0])
			}

			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "path:  %s\n", navigation.To.Path)
			fmt.Fprintf(out, "name:  %s\n", navigation.To.Name())
			fmt.Fprintf(out, "title: %s\n", doc.Title())

			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", defaultTitle(), "Document title before navigating")

	return cmd
}
