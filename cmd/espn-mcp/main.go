package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fantasydesk/espn-mcp/internal/api/espn"
	"github.com/fantasydesk/espn-mcp/internal/config"
	"github.com/fantasydesk/espn-mcp/internal/leaguecache"
	"github.com/fantasydesk/espn-mcp/internal/models"
	"github.com/fantasydesk/espn-mcp/internal/service"
	"github.com/fantasydesk/espn-mcp/internal/session"
	"github.com/fantasydesk/espn-mcp/internal/tools"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	espnClient := espn.NewClient()
	espnAPI := espn.NewAPI(espnClient)

	sessions := session.NewStore()
	secrets, err := config.LoadSecrets(cfg.ESPN.SecretsFile)
	if err != nil {
		slog.Error("Error loading secrets file", "error", err)
	} else if secrets != nil {
		sessions.Store(tools.SessionID, models.Credential{ESPNS2: secrets.ESPNS2, SWID: secrets.SWID})
		slog.Info("Loaded bootstrap credentials", "league_id", secrets.LeagueID)
	}

	cache := leaguecache.New(espnAPI, sessions)
	fantasyService := service.NewFantasyService(sessions, cache, cfg.ESPN.Year)

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "espn-fantasy-football",
			Version: "0.1.0",
		},
		nil,
	)
	tools.Register(server, fantasyService)

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle(cfg.Server.MCPPath, handler)

	httpServer := &http.Server{Addr: cfg.Server.Addr, Handler: mux}

	go func() {
		slog.Info("MCP HTTP server listening", "addr", cfg.Server.Addr, "path", cfg.Server.MCPPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
