// Command chessterm plays a two-player game in the terminal, or serves that
// game to SSH clients with -ssh.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/benbeisheim/chessrules-backend/internal/config"
	"github.com/benbeisheim/chessrules-backend/internal/logs"
	"github.com/benbeisheim/chessrules-backend/internal/terminal"
	"github.com/fatih/color"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	serveSSH := flag.Bool("ssh", false, "serve sessions over SSH instead of stdin")
	flag.StringVar(&cfg.SSHAddr, "addr", cfg.SSHAddr, "SSH listen address")
	flag.StringVar(&cfg.HostKeyFile, "hostkey", cfg.HostKeyFile, "SSH host key file")
	flag.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "trace every move validation check")
	flag.Parse()

	if *serveSSH {
		logFile, err := logs.Init(cfg.LogFile, "[chessterm] ")
		if err != nil {
			log.Fatalf("logs: %v", err)
		}
		defer logFile.Close()
		logs.SetVerbose(cfg.Verbose)

		server, err := terminal.NewSSHServer(cfg.SSHAddr, cfg.HostKeyFile)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("ssh server listening on %s", cfg.SSHAddr)
		log.Fatal(server.ListenAndServe())
	}

	logFile, err := logs.InitFile(cfg.LogFile, "[chessterm] ")
	if err != nil {
		log.Fatalf("logs: %v", err)
	}
	defer logFile.Close()
	logs.SetVerbose(cfg.Verbose)

	if err := terminal.NewSession(os.Stdin, os.Stdout, !color.NoColor).Run(); err != nil {
		log.Printf("session: %v", err)
		os.Exit(1)
	}
}
