package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"go-file-manager/internal/app"
	"go-file-manager/internal/config"
	"go-file-manager/internal/logger"
	"go-file-manager/internal/service"
	"go-file-manager/internal/tui"
)

func main() {
	os.Exit(run())
}

// run owns every deferred cleanup, so main only turns its result into an
// exit code.
func run() int {
	downloadDir := flag.String("download-dir", ".", "directory that downloads are written to")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// The terminal belongs to the UI; logs go to a file or nowhere.
	var logOutput io.Writer = io.Discard
	if cfg.TUILogFile != "" {
		f, openErr := os.OpenFile(cfg.TUILogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if openErr != nil {
			_, _ = fmt.Fprintln(os.Stderr, openErr)
			return 1
		}
		defer f.Close()
		logOutput = f
	}
	logger.Setup(logOutput, cfg.LogLevel, false)

	core, err := app.NewCore(cfg)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}
	core.Start()
	defer core.Stop()

	// Paths given on the command line are uploaded before the UI opens.
	for _, path := range flag.Args() {
		src, srcErr := service.NewPathSource(path)
		if srcErr != nil {
			_, _ = fmt.Fprintln(os.Stderr, srcErr)
			continue
		}
		if _, uploadErr := core.Service.Upload(context.Background(), src); uploadErr != nil {
			_, _ = fmt.Fprintln(os.Stderr, uploadErr)
		}
	}

	events, unsubscribe := core.Bus.Subscribe()
	defer unsubscribe()

	p := tea.NewProgram(tui.New(core.Service, tui.Options{Events: events, DownloadDir: *downloadDir}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
