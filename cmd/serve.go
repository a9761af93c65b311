package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ats-questionnaire/internal/storage"
	"github.com/spigell/ats-questionnaire/internal/web"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the questionnaire web server",
	Run: func(cmd *cobra.Command, _ []string) {
		logger := newLogger()

		if err := serve(cmd.Context(), logger); err != nil {
			logger.Fatal("serving", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "address to listen on (default :8080)")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve(ctx context.Context, logger *zap.Logger) error {
	config, err := getConfig()
	if err != nil {
		return fmt.Errorf("getting a config: %w", err)
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config.Storage, "", "  ")
	logger.Debug(fmt.Sprintf("starting with storage config: \n %s", pretty))

	client, err := newManatalClient(config.Manatal, logger)
	if err != nil {
		return err
	}

	store, closeStore, err := storage.New(config.Storage)
	if err != nil {
		return fmt.Errorf("creating response store: %w", err)
	}
	defer closeStore()

	if err := storage.Check(ctx, store); err != nil {
		return fmt.Errorf("checking response store: %w", err)
	}

	server, err := web.NewServer(client, store, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              config.Server.Listen,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting the ats-questionnaire server",
			zap.String("version", version),
			zap.String("listen", srv.Addr),
			zap.String("storage", config.Storage.Backend),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down the server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
