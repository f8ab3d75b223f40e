package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/relocate-cli/internal/assistant"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat HTTP server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// The assistant is swapped whole on reload so in-flight requests
		// never observe a partially loaded dataset.
		var current atomic.Pointer[assistant.Assistant]

		rebuild := func() error {
			rows, err := loadRows(ctx, "", "")
			if err != nil {
				return err
			}
			asst, err := buildAssistant(rows)
			if err != nil {
				return err
			}
			current.Store(asst)
			return nil
		}
		if err := rebuild(); err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/v1/ask", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				Message string `json:"message"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}

			requestID := uuid.New().String()
			ans, err := current.Load().Reply(req.Context(), body.Message)
			if err != nil {
				zap.L().Error("ask failed", zap.String("request_id", requestID), zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
				return
			}

			writeJSON(w, http.StatusOK, struct {
				RequestID string `json:"request_id"`
				*assistant.Answer
			}{requestID, ans})
		})

		r.Post("/v1/reload", func(w http.ResponseWriter, _ *http.Request) {
			if err := rebuild(); err != nil {
				zap.L().Error("reload failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "reload failed"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "reloaded"})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
