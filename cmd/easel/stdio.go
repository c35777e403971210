package main

import (
	"log/slog"

	"github.com/flemzord/easel/internal/config"
	"github.com/flemzord/easel/internal/event"
	"github.com/flemzord/easel/internal/mcpserver"
	"github.com/flemzord/easel/internal/session"
	"github.com/flemzord/easel/internal/style"
	"github.com/flemzord/easel/internal/tool"
	"github.com/flemzord/easel/internal/tools"
)

const (
	stdioDefaultWidth  = 800
	stdioDefaultHeight = 600
)

// serveStdio runs the tool catalogue over MCP stdio against a single
// in-process session. The config file is optional here: when cfgPath is
// empty and no file is found in the standard locations, built-in defaults
// apply.
func serveStdio(cfgPath string, logger *slog.Logger) error {
	width, height := stdioDefaultWidth, stdioDefaultHeight
	presets, err := style.NewLibrary(nil)
	if err != nil {
		return err
	}

	if cfgPath == "" {
		if resolved, err := resolveConfigPath(); err == nil {
			cfgPath = resolved
		}
	}
	if cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		if err := config.Validate(cfg); err != nil {
			return err
		}
		if cfg.Canvas.DefaultWidth > 0 {
			width = cfg.Canvas.DefaultWidth
		}
		if cfg.Canvas.DefaultHeight > 0 {
			height = cfg.Canvas.DefaultHeight
		}
		presets, err = config.PresetLibrary(cfg)
		if err != nil {
			return err
		}
	}

	sess, err := session.New(width, height)
	if err != nil {
		return err
	}

	registry, err := tools.NewRegistry(tools.Config{
		Session: sess,
		Presets: presets,
		Events:  event.NewHub(),
	})
	if err != nil {
		return err
	}

	dispatcher := tool.NewDispatcher(tool.DispatcherConfig{
		Registry:  registry,
		Lock:      sess.Locker(),
		SessionID: sess.ID,
		Logger:    logger,
	})

	srv, err := mcpserver.New(mcpserver.Config{
		Registry:   registry,
		Dispatcher: dispatcher,
		Version:    version,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	logger.Info("serving MCP over stdio", "session", sess.ID, "width", width, "height", height)
	return srv.ServeStdio()
}
