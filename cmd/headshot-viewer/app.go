package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"headshot-viewer/internal/backend"
	"headshot-viewer/internal/config"
	"headshot-viewer/internal/gui"
	"headshot-viewer/internal/logger"
	"headshot-viewer/internal/metrics"
	"headshot-viewer/internal/service"
	"headshot-viewer/internal/shutdown"
	"headshot-viewer/internal/workflow"
)

const (
	clockInterval   = time.Minute
	metricsInterval = 30 * time.Second
)

// Application wires the backend, the coordinator and the window together and
// owns their lifecycle.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	cfg     *config.Config

	metrics       *metrics.Metrics
	metricsServer *metrics.Server
	service       *service.Service
	coordinator   *workflow.Coordinator
	manager       *gui.Manager
	controller    *gui.Controller
	shutdown      *shutdown.Manager

	ctx context.Context
}

func NewApplication(ctx context.Context, cfg *config.Config, log logger.Logger) (*Application, error) {
	m := metrics.New()

	mock, err := backend.NewMock(log,
		backend.WithBaseURL(cfg.Backend.BaseURL),
		backend.WithLatency(cfg.Backend.LatencyDuration()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend: %w", err)
	}
	facade := backend.WithObserver(mock, m)

	svc := service.New(facade, service.Options{
		Username:       cfg.Backend.Username,
		SettingsPath:   cfg.Settings.Path,
		MemorySettings: cfg.Settings.Memory,
	}, log)
	if err := svc.Init(ctx); err != nil {
		return nil, err
	}

	fyneApp := app.NewWithID(cfg.Window.AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      cfg.Window.AppID,
		Name:    cfg.Window.Title,
		Version: version,
	})

	window := fyneApp.NewWindow(cfg.Window.Title)
	window.Resize(fyne.NewSize(cfg.Window.Width, cfg.Window.Height))
	window.CenterOnScreen()

	coord := workflow.New(facade, svc.Catalog, svc.Settings, log,
		workflow.WithScheduler(fyne.Do),
		workflow.WithRecorder(m),
	)

	manager := gui.NewManager(window, cfg.Window.Title, log)
	window.SetContent(manager.GetMainContainer())

	controller := gui.NewController(manager, coord, svc.Settings, log, fyne.Do)
	controller.Bind()

	a := &Application{
		fyneApp:     fyneApp,
		window:      window,
		logger:      log,
		cfg:         cfg,
		metrics:     m,
		service:     svc,
		coordinator: coord,
		manager:     manager,
		controller:  controller,
		shutdown:    shutdown.NewManager(log, cfg.ShutdownTimeoutDuration()),
		ctx:         ctx,
	}
	controller.SetupMenus(a.initiateShutdown, m.Summary)

	if cfg.Metrics.Addr != "" {
		a.metricsServer = metrics.NewServer(cfg.Metrics.Addr, m, log)
	}

	a.registerShutdown()
	a.setupWindowEvents()

	log.Info("Application", "application initialized", map[string]interface{}{
		"version":     version,
		"app_id":      cfg.Window.AppID,
		"backend_url": cfg.Backend.BaseURL,
		"settings":    cfg.Settings.Path,
		"metrics":     cfg.Metrics.Addr,
		"go_version":  runtime.Version(),
	})
	return a, nil
}

// registerShutdown orders teardown so the UI stops first and the settings
// store closes last.
func (a *Application) registerShutdown() {
	a.shutdown.Register("service", a.service)
	if a.metricsServer != nil {
		a.shutdown.Register("metrics server", a.metricsServer)
	}
	a.shutdown.Register("coordinator", shutdown.Func(a.coordinator.Shutdown))
	a.shutdown.Register("controller", a.controller)
}

// Run shows the window and blocks until the application quits. A non-empty
// directory is loaded once the window is up, overriding the last one.
func (a *Application) Run(directory string) error {
	if a.metricsServer != nil {
		a.metricsServer.Start()
	}
	a.controller.StartClock(clockInterval)
	a.shutdown.Listen(a.initiateShutdown)

	if directory != "" {
		a.controller.LoadDirectory(directory)
	}

	go func() {
		select {
		case <-a.ctx.Done():
			a.logger.Info("Application", "context cancelled, initiating shutdown", nil)
			a.initiateShutdown()
		case <-a.shutdown.Done():
		}
	}()
	go a.logMetrics()

	a.window.ShowAndRun()
	a.shutdown.Shutdown()

	a.logger.Info("Application", "application terminated", nil)
	return nil
}

func (a *Application) setupWindowEvents() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)

		current := a.coordinator.Current()
		if current == nil || !current.Dirty {
			a.initiateShutdown()
			return
		}
		dialog.ShowConfirm("Exit Headshot Viewer",
			fmt.Sprintf("%s has unsaved edits. Exit anyway?", current.Name()),
			func(confirmed bool) {
				if confirmed {
					a.initiateShutdown()
				}
			}, a.window)
	})
}

// initiateShutdown tears components down off the UI goroutine, then quits
// the Fyne event loop.
func (a *Application) initiateShutdown() {
	go func() {
		a.shutdown.Shutdown()
		fyne.Do(a.fyneApp.Quit)
	}()
}

func (a *Application) logMetrics() {
	ticker := time.NewTicker(metricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.logger.Debug("Application", "backend statistics", map[string]interface{}{
				"summary":    a.metrics.Summary(),
				"goroutines": runtime.NumGoroutine(),
			})
		case <-a.shutdown.Context().Done():
			return
		}
	}
}
