package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Waseem-Khan-Dawar/University-ChatBot/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		go env.Sessions.Janitor(ctx,
			time.Duration(cfg.Session.JanitorIntervalMinutes)*time.Minute,
			time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newMux(env),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port), zap.Int("records", len(env.Catalog.Records())))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// newMux builds the HTTP routes over an initialized environment.
func newMux(env *botEnv) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"records": len(env.Catalog.Records()),
		})
	})

	mux.HandleFunc("GET /vocab", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"universities": env.Catalog.Universities(),
			"campuses":     env.Catalog.Campuses(),
			"departments":  env.Catalog.Departments(),
			"programs":     env.Catalog.Programs(),
			"years":        env.Catalog.Years(),
		})
	})

	mux.HandleFunc("POST /chat", func(w http.ResponseWriter, r *http.Request) {
		var req model.TurnRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Message == "" {
			http.Error(w, `{"error":"message is required"}`, http.StatusBadRequest)
			return
		}

		reply := env.Engine.Turn(r.Context(), req)

		zap.L().Info("chat turn",
			zap.String("session", reply.SessionID),
			zap.String("kind", turnKind(reply)),
		)
		writeJSON(w, http.StatusOK, reply)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func turnKind(reply model.TurnReply) string {
	if len(reply.Outcomes) == 0 {
		return ""
	}
	return string(reply.Outcomes[0].Kind)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
