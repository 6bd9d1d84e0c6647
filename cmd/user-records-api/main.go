package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	lib "github.com/theoremus-urban-solutions/user-records-api"
	"github.com/theoremus-urban-solutions/user-records-api/config"
	"github.com/theoremus-urban-solutions/user-records-api/records"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args and executes the selected mode. It returns the process exit
// code: 0 on success, 1 for a failed lookup or startup, 2 for bad usage.
func run(args []string, stdout, stderr io.Writer) int {
	fset := flag.NewFlagSet("user-records-api", flag.ContinueOnError)
	fset.SetOutput(stderr)
	mode := fset.String("mode", "serve", "serve|oneshot")
	configPath := fset.String("config", "", "config file (default: search config.yml, ./config/config.yml)")
	port := fset.Int("port", 0, "listen port (overrides config and PORT)")
	basicUsers := fset.String("basicUsers", "", "basic users location: path, http(s) URL or s3://bucket/key (overrides config)")
	detailedUsers := fset.String("detailedUsers", "", "detailed users location (overrides config)")
	set := fset.String("set", records.Basic, "oneshot record set: basic|detailed")
	format := fset.String("format", "json", "oneshot format: json|soap")
	id := fset.String("id", "", "oneshot user id; empty renders the whole set")
	if err := fset.Parse(args); err != nil {
		return 2
	}

	if *mode != "serve" && *mode != "oneshot" {
		fmt.Fprintf(stderr, "unknown mode %q: want serve or oneshot\n", *mode)
		return 2
	}
	f := lib.Format(*format)
	if f != lib.FormatJSON && f != lib.FormatSOAP {
		fmt.Fprintf(stderr, "unknown format %q: want json or soap\n", *format)
		return 2
	}
	if *set != records.Basic && *set != records.Detailed {
		fmt.Fprintf(stderr, "unknown set %q: want %s or %s\n", *set, records.Basic, records.Detailed)
		return 2
	}

	if err := loadConfig(*configPath); err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	cfg := config.Config
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *basicUsers != "" {
		cfg.Data.BasicUsers = *basicUsers
	}
	if *detailedUsers != "" {
		cfg.Data.DetailedUsers = *detailedUsers
	}

	lib.InitLogging(cfg.Log)

	api, err := lib.NewAPIFromConfig(cfg)
	if err != nil {
		log.Error().Err(err).Msg("error creating data sources")
		return 1
	}

	if *mode == "serve" {
		lib.StartServer(cfg, lib.NewRouter(api, cfg))
		lib.HandleGracefulShutdown(time.Duration(cfg.Server.ShutdownTimeoutMS) * time.Millisecond)
		return 0
	}

	var resp lib.Response
	if *id == "" {
		resp = api.GetAll(context.Background(), *set, f)
	} else {
		resp = api.GetByID(context.Background(), *set, *id, f)
	}
	fmt.Fprintln(stdout, string(resp.Body))
	if resp.Status >= 300 {
		return 1
	}
	return 0
}

// loadConfig reads an explicit path, or searches the default paths and falls
// back to built-in defaults when no file exists.
func loadConfig(path string) error {
	if path != "" {
		return config.LoadAppConfigFrom(path)
	}
	err := config.LoadAppConfig()
	if errors.Is(err, fs.ErrNotExist) {
		config.UseDefaults()
		return nil
	}
	return err
}
