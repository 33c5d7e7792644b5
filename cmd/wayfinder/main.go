// Command wayfinder serves the wayfinder app and inspects its navigation table.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/wayfinder"
	"github.com/xy-planning-network/wayfinder/http/pages"
	"github.com/xy-planning-network/wayfinder/http/template"
	"github.com/xy-planning-network/wayfinder/logger"
	"github.com/xy-planning-network/wayfinder/nav"
	"github.com/xy-planning-network/wayfinder/ranger"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wayfinder",
		Short: "Navigate between the Index, Files and Result views",
		Long: `wayfinder maps URL paths to lazily loaded views,
runs navigation guards before every transition
and keeps the document title in step with where you are.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		resolveCmd(),
		versionCmd(),
	)

	return rootCmd
}

// newTable constructs the app's navigation table without serving it.
func newTable() (*nav.Table, error) {
	return pages.Routes(template.NewParser())
}

// newCmdLogger constructs a logger.Logger writing warnings and worse to w.
func newCmdLogger(w io.Writer) logger.Logger {
	return logger.New(
		logger.WithLevel(logger.LogLevelWarn),
		logger.WithLogger(log.New(w, "", log.LstdFlags)),
	)
}

func defaultTitle() string { return wayfinder.EnvVarOrString(ranger.AppTitleEnvVar, pages.DefaultTitle) }
