package cli

import (
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/server"
	"github.com/taskdeck/taskdeck/internal/storage"
)

func newServeCmd() *cobra.Command {
	var (
		addr   string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the taskdeck REST backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.New(os.Stderr, "taskdeck-serve ", log.LstdFlags)

			repo, err := storage.OpenSQLite(dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			mux := http.NewServeMux()
			mux.Handle("/api/", server.NewHTTPServer(repo, logger).Handler())

			logger.Printf("listening on %s (db: %s)", addr, dbPath)
			return http.ListenAndServe(addr, mux)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&dbPath, "db", "taskdeck.db", "path to the sqlite database file")
	return cmd
}
