package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"task-dashboard/internal/logging"
	"task-dashboard/internal/repository/sqlite"
	"task-dashboard/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		Long: `Run the persistence server used by the dashboard and by other taskdash
clients configured with server_url.

Endpoints:
  GET  /api/data        last saved snapshot
  POST /api/save        replace the snapshot
  POST /api/upload      store an attachment (multipart field "file")
  GET  /uploads/{name}  download a stored attachment
  GET  /api/view        filtered task lists and counters
  GET  /api/dashboard   dashboard aggregates
  GET  /api/calendar    calendar events

Examples:
  taskdash serve
  taskdash serve --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadCommandConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.ListenAddr = addr
			}

			logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return fmt.Errorf("failed to configure logging: %w", err)
			}

			db, err := sqlite.NewDB(sqlite.Config{Path: cfg.DBPath, Driver: cfg.DBDriver})
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			defer db.Close()

			srv := server.New(server.Config{
				UploadDir:   cfg.UploadDir,
				MaxUploadMB: cfg.MaxUploadMB,
				BackupFile:  cfg.BackupFile,
			}, sqlite.NewSnapshotRepository(db), sqlite.NewAttachmentRepository(db), logger)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx, cfg.ListenAddr)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides listen_addr)")
	return cmd
}
