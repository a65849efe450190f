package main

import (
	"fmt"
	"os"

	"github.com/qleap/qleap/internal/app"
	"github.com/qleap/qleap/internal/config"
)

var version = "v1.0.0"

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	srv, err := app.NewServer(app.ServerOptions{C: cfg, Version: version})
	if err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}

	if err := srv.Listen(cfg.GetInt("port"), cfg.GetBool("local_only")); err != nil {
		fmt.Fprintf(os.Stderr, "listen: %v\n", err)
		os.Exit(1)
	}
}
