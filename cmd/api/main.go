package main

import (
	"os"
	_ "time/tzdata"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"userapi/internal/logging"
)

// @title       User API
// @version     1.0
// @description CRUD over users held in a document store, with sequential ids.
// @BasePath    /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Error("command_failed", err, nil)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:           "userapi",
		Short:         "User API backed by MongoDB, PostgreSQL or memory",
		SilenceUsage:  true,
		SilenceErrors: true,
		// bare "userapi" serves
		RunE: serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())
	root.AddCommand(serve, newMigrateCmd())
	return root
}
