// Package service bundles the backend facade, the preset catalog and the
// settings store behind one explicit lifecycle.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"headshot-viewer/internal/backend"
	"headshot-viewer/internal/logger"
	"headshot-viewer/internal/presets"
	"headshot-viewer/internal/settings"
)

type Options struct {
	Username     string
	SettingsPath string
	// MemorySettings keeps settings in memory instead of SettingsPath.
	MemorySettings bool
}

type Service struct {
	Facade   backend.Facade
	Catalog  *presets.Catalog
	Settings *settings.Store

	opts   Options
	logger logger.Logger
	token  string
}

func New(facade backend.Facade, opts Options, log logger.Logger) *Service {
	return &Service{
		Facade:  facade,
		Catalog: presets.NewCatalog(),
		opts:    opts,
		logger:  log,
	}
}

// Init opens the settings store, authenticates and loads the presets. On
// failure the store is closed again and Settings stays nil.
func (s *Service) Init(ctx context.Context) error {
	store, err := s.openSettings()
	if err != nil {
		return err
	}

	if err := s.connect(ctx, store); err != nil {
		if cerr := store.Close(); cerr != nil {
			s.logger.Error("Service", cerr, nil)
		}
		s.token = ""
		return err
	}
	s.Settings = store

	s.logger.Info("Service", "service initialized", map[string]interface{}{
		"username": s.opts.Username,
		"presets":  s.Catalog.Len(),
		"settings": s.opts.SettingsPath,
	})
	return nil
}

func (s *Service) connect(ctx context.Context, store *settings.Store) error {
	callCtx, cancel := context.WithTimeout(ctx, store.APITimeout())
	defer cancel()

	token, err := s.Facade.Authenticate(callCtx, s.opts.Username)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	s.token = token

	seed, err := s.Facade.Presets(callCtx)
	if err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}
	if err := s.Catalog.Replace(seed); err != nil {
		return fmt.Errorf("failed to load presets: %w", err)
	}
	return nil
}

func (s *Service) openSettings() (*settings.Store, error) {
	var b settings.Backend
	if s.opts.MemorySettings || s.opts.SettingsPath == "" {
		b = settings.NewMemory()
	} else {
		if err := os.MkdirAll(filepath.Dir(s.opts.SettingsPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create settings directory: %w", err)
		}
		bolt, err := settings.OpenBolt(s.opts.SettingsPath)
		if err != nil {
			return nil, err
		}
		b = bolt
	}

	store, err := settings.Open(b, s.logger)
	if err != nil {
		b.Close()
		return nil, err
	}
	return store, nil
}

// Authenticated reports whether Init obtained a session token.
func (s *Service) Authenticated() bool {
	return s.token != ""
}

// Shutdown closes the settings store.
func (s *Service) Shutdown() {
	if s.Settings == nil {
		return
	}
	if err := s.Settings.Close(); err != nil {
		s.logger.Error("Service", err, nil)
		return
	}
	s.logger.Info("Service", "service shut down", nil)
}
