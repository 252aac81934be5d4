package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/validalex/draft-backend/internal/builder"
)

var rootCmd = &cobra.Command{
	Use:          "draft-backend",
	Short:        "Petition drafting backend for ação de cobrança",
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(renderCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var environment string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := builder.Build(environment)
			if err != nil {
				return fmt.Errorf("failed to build application: %w", err)
			}
			return app.Run()
		},
	}
	cmd.Flags().StringVarP(&environment, "env", "e", "local", "environment name, loads .env.<env>")
	return cmd
}
