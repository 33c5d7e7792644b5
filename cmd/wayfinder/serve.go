package main

import (
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/wayfinder/ranger"
)

func serveCmd() *cobra.Command {
	var (
		env         string
		maintenance bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Long: `Run the web server until it receives an interrupt or termination signal.

Configuration is read from the environment and a .env file in the working directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []ranger.RangerOption{
				ranger.WithContext(cmd.Context()),
				ranger.WithEnv(env),
			}
			if cmd.Flags().Changed("maintenance") {
				opts = append(opts, ranger.WithMaintenanceMode(maintenance))
			}

			rng, err := ranger.New(opts...)
			if err != nil {
				return err
			}

			return rng.Guide()
		},
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment to run in, overriding ENVIRONMENT")
	cmd.Flags().BoolVar(&maintenance, "maintenance", false, "Respond to every request with a maintenance page")

	return cmd
}
