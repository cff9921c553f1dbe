package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/controller"
	"github.com/benbeisheim/chessrules-backend/internal/logs"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "address to listen on")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "badger directory, empty keeps games in memory")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "trace every move validation check")
	flag.Parse()

	logFile, err := logs.Init(cfg.LogFile, "[server] ")
	if err != nil {
		log.Fatalf("logs: %v", err)
	}
	defer logFile.Close()
	logs.SetVerbose(cfg.Verbose)

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer store.Close()

	gameManager, err := service.NewGameManager(store, cfg.ClockTime, time.Second)
	if err != nil {
		log.Fatalf("restoring games: %v", err)
	}
	defer gameManager.Close()
	gameService := service.NewGameService(gameManager)

	app := controller.NewApp(gameService, cfg.Origins())

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		log.Println("shutting down")
		app.Shutdown()
	}()

	log.Printf("listening on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Printf("listen: %v", err)
	}
}
