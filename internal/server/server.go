package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/nivrem/killer-roulette-backend/internal/game"
)

type Server struct {
	port      int
	staticDir string

	hub *game.Hub
}

// NewServer builds the HTTP server around the game hub. PORT and PUBLIC_DIR
// come from the environment.
func NewServer(hub *game.Hub) *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 3111
	}

	staticDir := os.Getenv("PUBLIC_DIR")
	if staticDir == "" {
		staticDir = "./public"
	}

	s := &Server{
		port:      port,
		staticDir: staticDir,
		hub:       hub,
	}

	// No read/write deadlines: websocket connections are long-lived
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.RegisterRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}
}
