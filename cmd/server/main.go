package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nivrem/killer-roulette-backend/internal/dice"
	"github.com/nivrem/killer-roulette-backend/internal/game"
	"github.com/nivrem/killer-roulette-backend/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	hub := game.New(&game.Config{
		Registry: game.NewRegistry(),
		Roller:   dice.New(&dice.Config{}),
	})

	srv := server.NewServer(hub)

	go func() {
		log.Printf("Server running at http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Keep running until interrupted
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
