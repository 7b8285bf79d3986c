package gui

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"headshot-viewer/internal/logger"
	"headshot-viewer/internal/settings"
	"headshot-viewer/internal/workflow"
)

// DefaultSimilarity is the threshold used by the editor's similar-images
// button.
const DefaultSimilarity = 0.8

// Controller turns widget callbacks into coordinator calls and coordinator
// events into widget updates. It runs entirely on the UI goroutine except
// for the clock ticker.
type Controller struct {
	manager     *Manager
	coordinator *workflow.Coordinator
	store       *settings.Store
	logger      logger.Logger
	schedule    workflow.Scheduler

	stop     chan struct{}
	stopOnce sync.Once
	ticker   sync.WaitGroup
}

func NewController(manager *Manager, coord *workflow.Coordinator, store *settings.Store, log logger.Logger, schedule workflow.Scheduler) *Controller {
	if schedule == nil {
		schedule = fyne.Do
	}
	return &Controller{
		manager:     manager,
		coordinator: coord,
		store:       store,
		logger:      log,
		schedule:    schedule,
		stop:        make(chan struct{}),
	}
}

// Bind installs every widget handler and coordinator listener and restores
// persisted settings into the widgets.
func (c *Controller) Bind() {
	m := c.manager

	m.Header().SetChooseHandler(c.ChooseDirectory)
	m.Header().SetLoadHandler(c.LoadSelected)
	m.Header().SetDirectory(c.store.LastDirectory())

	m.SetTabHandler(c.tabSelected)
	m.Footer().SetNavigateHandler(m.SelectTab)

	g := m.Gallery()
	g.SetToggleHandler(c.coordinator.ToggleSelect)
	g.SetPresetHandler(c.ApplyPreset)
	g.SetApplyHandler(c.SubmitBatch)
	g.SetArrangeHandler(func(string, string) { c.arrange() })
	g.SetQualityHandler(c.setPreviewQuality)
	g.SetAutoProcessingHandler(c.setAutoSave)
	g.SetOptions(c.store.PreviewQuality(), c.store.AutoSave())
	g.SetPresets(c.coordinator.Presets())

	m.Editor().SetAdjustHandler(c.adjust)
	m.Editor().SetSimilarHandler(c.FindSimilar)
	m.Editor().SetResetHandler(c.ResetCurrent)
	m.Editor().SetSaveHandler(c.SaveCurrent)
	m.Hue().SetAdjustHandler(c.adjust)
	m.Hue().SetPreviewQuality(c.store.PreviewQuality())

	c.coordinator.On(workflow.LoadStarted, func(workflow.Event) {
		m.Header().SetBusy(true)
		m.Status().SetStatus("Loading headshots...")
	})
	c.coordinator.On(workflow.CollectionLoaded, func(workflow.Event) {
		c.arrange()
		m.Status().SetStatus(fmt.Sprintf("Loaded %d headshots", c.coordinator.Len()))
	})
	c.coordinator.On(workflow.SelectionChanged, func(workflow.Event) {
		g.RefreshSelection()
		c.updateCounts()
	})
	c.coordinator.On(workflow.CurrentChanged, func(workflow.Event) {
		current := c.coordinator.Current()
		for _, v := range m.views {
			v.SetCurrentImage(current)
		}
	})
	c.coordinator.On(workflow.AdjustmentsChanged, func(e workflow.Event) {
		if e.Record != nil && e.Record == c.coordinator.Current() {
			m.Editor().Refresh()
			m.Hue().Refresh()
		}
	})
	c.coordinator.On(workflow.PresetsChanged, func(workflow.Event) {
		g.SetPresets(c.coordinator.Presets())
	})
	c.coordinator.On(workflow.BatchProgress, func(e workflow.Event) {
		m.Status().SetStatus(fmt.Sprintf("Applying settings... %d of %d headshots", e.Done, e.Total))
	})
	c.coordinator.On(workflow.OperationFailed, func(e workflow.Event) {
		m.Status().SetStatus(fmt.Sprintf("%s failed: %v", e.Op, e.Err))
	})

	c.updateCounts()
}

// StartClock refreshes the footer timestamp now and then every interval
// until Shutdown.
func (c *Controller) StartClock(interval time.Duration) {
	c.manager.Footer().SetTime(time.Now())

	c.ticker.Add(1)
	go func() {
		defer c.ticker.Done()
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case now := <-t.C:
				c.schedule(func() { c.manager.Footer().SetTime(now) })
			case <-c.stop:
				return
			}
		}
	}()
}

func (c *Controller) Shutdown() {
	c.stopOnce.Do(func() { close(c.stop) })
	c.ticker.Wait()
}

// ChooseDirectory opens a folder picker starting at the last directory.
func (c *Controller) ChooseDirectory() {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			c.handleError("Directory selection error", err)
			return
		}
		if uri == nil {
			return
		}
		c.LoadDirectory(uri.Path())
	}, c.manager.GetWindow())

	if last := c.store.LastDirectory(); last != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(last)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}

func (c *Controller) LoadDirectory(dir string) {
	c.manager.Header().SetDirectory(dir)
	c.coordinator.LoadDirectory(dir, func(err error) {
		if errors.Is(err, workflow.ErrSuperseded) {
			return
		}
		c.manager.Header().SetBusy(false)
		if err != nil {
			c.handleError("Failed to load headshots", err)
		}
	})
}

// LoadSelected sends the first selected headshot to the editor tabs. With
// nothing loaded yet it reloads the last directory instead.
func (c *Controller) LoadSelected() {
	if c.coordinator.Len() == 0 {
		if last := c.store.LastDirectory(); last != "" {
			c.LoadDirectory(last)
			return
		}
		c.manager.Status().SetStatus("Choose a directory first")
		return
	}
	if !c.coordinator.HasSelection() {
		c.manager.Status().SetStatus("Select at least one headshot")
		return
	}

	c.coordinator.PropagateCurrent(-1)
	c.manager.SelectTab(TabEditor)
}

func (c *Controller) ApplyPreset(name string) {
	if !c.coordinator.HasSelection() {
		c.manager.Status().SetStatus("Select at least one headshot")
		return
	}
	c.manager.Status().SetStatus(fmt.Sprintf("Applying preset %s...", name))
	if err := c.coordinator.ApplyPreset(name, nil, c.reportDone); err != nil {
		c.handleError("Preset not applied", err)
	}
}

func (c *Controller) SubmitBatch(values map[string]int) {
	if !c.coordinator.HasSelection() {
		c.manager.Status().SetStatus("Select at least one headshot")
		return
	}
	c.manager.Status().SetStatus("Applying settings...")
	if err := c.coordinator.SubmitBatch(values, nil, c.reportDone); err != nil {
		c.handleError("Settings not applied", err)
	}
}

func (c *Controller) reportDone(r workflow.Report) {
	if r.Stale {
		c.manager.Status().SetStatus("Results discarded: a new directory was loaded")
		return
	}
	failed := len(r.Failed())
	if failed == 0 {
		c.manager.Status().SetStatus(fmt.Sprintf("Updated %d headshots", len(r.Succeeded())))
		return
	}
	c.manager.Status().SetStatus(fmt.Sprintf("%d of %d headshots failed", failed, len(r.Results)))
	c.handleError("Some headshots were not updated", r.Err())
}

func (c *Controller) ResetCurrent() {
	if err := c.coordinator.ResetCurrent(); err != nil {
		c.manager.Status().SetStatus(err.Error())
		return
	}
	c.manager.Status().SetStatus("Adjustments reset")
}

func (c *Controller) SaveCurrent() {
	err := c.coordinator.SaveCurrent("", func(out string, err error) {
		if err != nil {
			c.handleError("Save failed", err)
			return
		}
		c.manager.Status().SetStatus("Saved " + out)
	})
	if err != nil {
		c.manager.Status().SetStatus(err.Error())
	}
}

func (c *Controller) FindSimilar() {
	err := c.coordinator.FindSimilar(DefaultSimilarity, func(paths []string, err error) {
		if err != nil {
			c.handleError("Similar image search failed", err)
			return
		}
		c.manager.Status().SetStatus(fmt.Sprintf("Found %d similar images", len(paths)))
	})
	if err != nil {
		c.manager.Status().SetStatus(err.Error())
	}
}

// SavePreset stores the current image's adjustments as a named preset.
func (c *Controller) SavePreset(name string) {
	current := c.coordinator.Current()
	if current == nil {
		c.manager.Status().SetStatus(workflow.ErrNoCurrentImage.Error())
		return
	}
	err := c.coordinator.SavePreset(name, current.AdjustmentsCopy(), func(err error) {
		if err != nil {
			c.handleError("Preset not saved", err)
			return
		}
		c.manager.Status().SetStatus(fmt.Sprintf("Preset %s saved", name))
	})
	if err != nil {
		c.handleError("Preset not saved", err)
	}
}

func (c *Controller) adjust(name string, value int) {
	err := c.coordinator.AdjustLive(c.coordinator.Current(), name, value, nil)
	if err != nil {
		c.logger.Warning("Controller", "adjustment rejected", map[string]interface{}{
			"parameter": name,
			"value":     value,
			"error":     err.Error(),
		})
		c.manager.Status().SetStatus(err.Error())
	}
}

func (c *Controller) tabSelected(index int) {
	c.manager.Footer().SetPosition(index)
	if index != TabGallery {
		c.coordinator.PropagateCurrent(-1)
	}
}

func (c *Controller) arrange() {
	g := c.manager.Gallery()
	records := c.coordinator.Collection()
	g.ShowRecords(records, workflow.Arrange(records, g.Filter(), g.Sort()))
}

func (c *Controller) updateCounts() {
	c.manager.Status().SetCounts(c.coordinator.Len(), len(c.coordinator.CurrentSelection()))
}

func (c *Controller) setPreviewQuality(quality string) {
	if err := c.store.Set(settings.KeyPreviewQuality, quality); err != nil {
		c.handleError("Setting not saved", err)
		return
	}
	c.manager.Hue().SetPreviewQuality(quality)
}

func (c *Controller) setAutoSave(enabled bool) {
	if err := c.store.Set(settings.KeyAutoSave, enabled); err != nil {
		c.handleError("Setting not saved", err)
	}
}

// applySettings writes the settings dialog values, stopping at the first
// one the store rejects.
func (c *Controller) applySettings(v settings.Values) error {
	updates := []struct {
		key   string
		value interface{}
	}{
		{settings.KeyAutoSave, v.AutoSave},
		{settings.KeyPreviewQuality, v.PreviewQuality},
		{settings.KeyBatchSize, v.BatchSize},
		{settings.KeyAPITimeout, v.APITimeout},
	}
	for _, u := range updates {
		if err := c.store.Set(u.key, u.value); err != nil {
			return err
		}
	}

	c.manager.Gallery().SetOptions(v.PreviewQuality, v.AutoSave)
	c.manager.Hue().SetPreviewQuality(v.PreviewQuality)
	return nil
}

func (c *Controller) handleError(title string, err error) {
	c.manager.ShowError(title, err)
}
