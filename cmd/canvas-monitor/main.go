//go:build linux || darwin
// +build linux darwin

package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/royr0614/CANvas-J1939/codec"
	"github.com/royr0614/CANvas-J1939/config"
	"github.com/royr0614/CANvas-J1939/dbcmap"
	"github.com/royr0614/CANvas-J1939/logging"
)

func main() {
	var (
		configPath = flag.String("config", "canvas.yaml", "Path to config file")
		iface      = flag.String("iface", "", "Override SocketCAN interface name")
		tablePath  = flag.String("table", "", "Override frame table path (.csv frame map or .dbc)")
		logLevel   = flag.String("log", "", "trace|debug|info|warn|error|critical")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		_, _ = os.Stderr.WriteString("ERROR: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *iface != "" {
		cfg.Interface = *iface
	}
	if *tablePath != "" {
		cfg.Table.Path = *tablePath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := config.Validate(cfg); err != nil {
		_, _ = os.Stderr.WriteString("ERROR: " + err.Error() + "\n")
		os.Exit(1)
	}

	log, err := openLogger(cfg)
	if err != nil {
		_, _ = os.Stderr.WriteString("ERROR: cannot open log file: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Close()

	table, err := loadTable(cfg.Table.Path)
	if err != nil {
		log.Critical("Load frame table: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mon, err := NewMonitor(ctx, cfg, table, log)
	if err != nil {
		log.Critical("Startup failed: %v", err)
		os.Exit(1)
	}
	defer mon.Close()

	if err := mon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Critical("Run failed: %v", err)
		os.Exit(1)
	}
}

func openLogger(cfg *config.Config) (*logging.Logger, error) {
	level := logging.ParseLevel(cfg.Log.Level)
	if cfg.Log.File == "" {
		return logging.New(level), nil
	}
	return logging.NewFileLogger(cfg.Log.File, level, cfg.LogStdout())
}

func loadTable(path string) (*codec.MessageTable, error) {
	if strings.EqualFold(filepath.Ext(path), ".dbc") {
		return dbcmap.ParseFile(path)
	}
	return codec.LoadMessageTable(path)
}
