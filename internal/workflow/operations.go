package workflow

import (
	"fmt"

	"headshot-viewer/internal/models"
	"headshot-viewer/internal/settings"
)

// LoadDirectory scans dir and fetches metadata in the background, then
// replaces the collection. Results of a load overtaken by another load or
// by LoadCollection are dropped. done may be nil.
func (c *Coordinator) LoadDirectory(dir string, done func(error)) {
	c.loads++
	gen := c.loads

	if err := c.settings.Set(settings.KeyLastDirectory, dir); err != nil {
		c.logger.Warning("Workflow", "failed to persist last directory", map[string]interface{}{
			"dir":   dir,
			"error": err.Error(),
		})
	}

	c.logger.Info("Workflow", "loading directory", map[string]interface{}{"dir": dir, "load": gen})
	c.emit(Event{Type: LoadStarted, Op: "load_directory"})

	c.background(func() func() {
		records, err := c.scan(dir)
		return func() {
			if gen != c.loads {
				c.logger.Info("Workflow", "stale directory load dropped", map[string]interface{}{
					"dir":     dir,
					"load":    gen,
					"current": c.loads,
				})
				c.observe("load_directory", ErrSuperseded)
				if done != nil {
					done(ErrSuperseded)
				}
				return
			}

			c.observe("load_directory", err)
			if err != nil {
				c.fail("load_directory", err)
			} else {
				c.LoadCollection(records)
			}
			if done != nil {
				done(err)
			}
		}
	})
}

// scan runs on a worker goroutine. A metadata failure leaves that record
// with empty metadata.
func (c *Coordinator) scan(dir string) ([]*models.ImageRecord, error) {
	ctx, cancel := c.callContext()
	paths, err := c.facade.Scan(ctx, dir)
	cancel()
	if err != nil {
		return nil, backendError("scan", dir, err)
	}

	records := make([]*models.ImageRecord, 0, len(paths))
	for _, p := range paths {
		ctx, cancel := c.callContext()
		md, err := c.facade.Metadata(ctx, p)
		cancel()
		if err != nil {
			c.logger.Warning("Workflow", "metadata unavailable", map[string]interface{}{
				"path":  p,
				"error": err.Error(),
			})
			md = nil
		}
		records = append(records, models.NewImageRecord(p, md))
	}
	return records, nil
}

// ApplyPreset applies the named preset to targets, or to the selection when
// targets is nil. An unknown name fails immediately without touching any
// record. Otherwise each target gets its own backend request and successful
// targets have the preset merged into their adjustments. done, which may be
// nil, receives the per-image report once every request has finished.
func (c *Coordinator) ApplyPreset(name string, targets []*models.ImageRecord, done func(Report)) error {
	params, ok := c.catalog.Resolve(name)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrUnknownPreset, name)
		c.logger.Warning("Workflow", err.Error(), nil)
		c.observe("apply_preset", err)
		return err
	}
	if targets == nil {
		targets = c.CurrentSelection()
	}

	c.logger.Info("Workflow", "applying preset", map[string]interface{}{
		"preset":  name,
		"targets": len(targets),
	})

	gen := c.generation
	paths := pathsOf(targets)
	c.background(func() func() {
		results := make([]Outcome, len(paths))
		for i, p := range paths {
			ctx, cancel := c.callContext()
			err := c.facade.Apply(ctx, p, params)
			cancel()
			results[i] = Outcome{Path: p, Err: backendError("apply_preset", p, err)}
		}

		return func() {
			report := Report{Op: "apply_preset", Results: results}
			c.finishApply(gen, targets, params, &report)
			if done != nil {
				done(report)
			}
		}
	})
	return nil
}

// SubmitBatch validates settings and sends them to the backend in chunks of
// batch_size targets, emitting BatchProgress after each chunk. Nil targets
// means the selection; an empty target list succeeds without calling the
// backend.
func (c *Coordinator) SubmitBatch(values map[string]int, targets []*models.ImageRecord, done func(Report)) error {
	if err := models.ValidateParameters(values); err != nil {
		c.logger.Warning("Workflow", "batch settings rejected", map[string]interface{}{"error": err.Error()})
		c.observe("submit_batch", err)
		return err
	}
	if targets == nil {
		targets = c.CurrentSelection()
	}
	if len(targets) == 0 {
		c.observe("submit_batch", nil)
		if done != nil {
			c.schedule(func() { done(Report{Op: "submit_batch"}) })
		}
		return nil
	}

	params := models.CloneParameters(values)
	size := c.settings.BatchSize()
	if size < 1 {
		size = 1
	}

	c.logger.Info("Workflow", "submitting batch", map[string]interface{}{
		"targets":    len(targets),
		"batch_size": size,
		"settings":   len(params),
	})

	gen := c.generation
	paths := pathsOf(targets)
	c.background(func() func() {
		results := make([]Outcome, 0, len(paths))
		for start := 0; start < len(paths); start += size {
			end := start + size
			if end > len(paths) {
				end = len(paths)
			}
			results = append(results, c.applyChunk(paths[start:end], params)...)
			c.progress(gen, end, len(paths))
		}

		return func() {
			report := Report{Op: "submit_batch", Results: results}
			c.finishApply(gen, targets, params, &report)
			if done != nil {
				done(report)
			}
		}
	})
	return nil
}

// progress posts a BatchProgress event unless the collection has been
// replaced in the meantime.
func (c *Coordinator) progress(gen uint64, done, total int) {
	c.schedule(func() {
		if gen != c.generation {
			return
		}
		c.emit(Event{Type: BatchProgress, Op: "submit_batch", Done: done, Total: total})
	})
}

func (c *Coordinator) applyChunk(paths []string, params map[string]int) []Outcome {
	ctx, cancel := c.callContext()
	defer cancel()

	out := make([]Outcome, len(paths))
	results, err := c.facade.ApplyBatch(ctx, paths, params)
	if err != nil {
		for i, p := range paths {
			out[i] = Outcome{Path: p, Err: backendError("submit_batch", p, err)}
		}
		return out
	}

	byPath := make(map[string]error, len(results))
	for _, r := range results {
		byPath[r.Path] = r.Err
	}
	for i, p := range paths {
		rerr, ok := byPath[p]
		if !ok {
			rerr = fmt.Errorf("no result returned")
		}
		out[i] = Outcome{Path: p, Err: backendError("submit_batch", p, rerr)}
	}
	return out
}

// finishApply merges params into every target that succeeded, unless the
// collection has been replaced since the operation started.
func (c *Coordinator) finishApply(gen uint64, targets []*models.ImageRecord, params map[string]int, report *Report) {
	if gen != c.generation {
		report.Stale = true
		c.logger.Info("Workflow", "results for replaced collection dropped", map[string]interface{}{"op": report.Op})
		c.observe(report.Op, ErrSuperseded)
		return
	}

	merged := 0
	for i, o := range report.Results {
		if o.Err != nil {
			c.logger.Error("Workflow", o.Err, map[string]interface{}{"op": report.Op, "path": o.Path})
			continue
		}
		r := targets[i]
		if err := r.Merge(params); err != nil {
			report.Results[i].Err = err
			continue
		}
		merged++
		c.emit(Event{Type: AdjustmentsChanged, Record: r})
	}

	err := report.Err()
	c.observe(report.Op, err)
	if err != nil {
		c.emit(Event{Type: OperationFailed, Op: report.Op, Err: err})
	}
	c.logger.Info("Workflow", "apply finished", map[string]interface{}{
		"op":     report.Op,
		"merged": merged,
		"failed": len(report.Failed()),
	})
}

// AdjustLive validates and stores one adjustment on record, then asks the
// backend to render it. A backend failure does not roll the value back.
func (c *Coordinator) AdjustLive(record *models.ImageRecord, name string, value int, done func(error)) error {
	if record == nil {
		return ErrNoCurrentImage
	}
	if err := record.SetAdjustment(name, value); err != nil {
		c.observe("adjust_live", err)
		return err
	}
	c.emit(Event{Type: AdjustmentsChanged, Record: record})

	path := record.Path
	params := map[string]int{name: value}
	c.background(func() func() {
		ctx, cancel := c.callContext()
		err := backendError("adjust_live", path, c.facade.Apply(ctx, path, params))
		cancel()

		return func() {
			c.observe("adjust_live", err)
			if err != nil {
				c.fail("adjust_live", err)
			}
			if done != nil {
				done(err)
			}
		}
	})
	return nil
}

// ResetCurrent clears every adjustment of the current image.
func (c *Coordinator) ResetCurrent() error {
	if c.current == nil {
		return ErrNoCurrentImage
	}
	c.current.ResetAdjustments()
	c.emit(Event{Type: AdjustmentsChanged, Record: c.current})
	return nil
}

// SaveCurrent saves the current image with its adjustments. dest may be
// empty to let the backend choose. done may be nil.
func (c *Coordinator) SaveCurrent(dest string, done func(string, error)) error {
	if c.current == nil {
		return ErrNoCurrentImage
	}
	c.save(c.current, dest, "save", done)
	return nil
}

func (c *Coordinator) autoSave(r *models.ImageRecord) {
	c.logger.Info("Workflow", "auto-saving edits", map[string]interface{}{"path": r.Path})
	c.save(r, "", "auto_save", nil)
}

func (c *Coordinator) save(r *models.ImageRecord, dest, op string, done func(string, error)) {
	path := r.Path
	snapshot := r.AdjustmentsCopy()

	c.background(func() func() {
		ctx, cancel := c.callContext()
		out, err := c.facade.Save(ctx, path, snapshot, dest)
		cancel()
		err = backendError(op, path, err)

		return func() {
			c.observe(op, err)
			if err != nil {
				c.fail(op, err)
			} else if c.contains(r) && sameAdjustments(r.Adjustments, snapshot) {
				r.Dirty = false
			}
			if done != nil {
				done(out, err)
			}
		}
	})
}

// FindSimilar asks the backend for images similar to the current one.
func (c *Coordinator) FindSimilar(threshold float64, done func([]string, error)) error {
	if c.current == nil {
		return ErrNoCurrentImage
	}

	path := c.current.Path
	c.background(func() func() {
		ctx, cancel := c.callContext()
		paths, err := c.facade.FindSimilar(ctx, path, threshold)
		cancel()
		err = backendError("find_similar", path, err)

		return func() {
			c.observe("find_similar", err)
			if err != nil {
				c.fail("find_similar", err)
			}
			if done != nil {
				done(paths, err)
			}
		}
	})
	return nil
}

// SavePreset validates a new preset, stores it through the backend and adds
// it to the catalog once the backend accepts it.
func (c *Coordinator) SavePreset(name string, params map[string]int, done func(error)) error {
	preset := models.Preset{Name: name, Parameters: models.CloneParameters(params)}
	if err := preset.Validate(); err != nil {
		return err
	}

	c.background(func() func() {
		ctx, cancel := c.callContext()
		err := backendError("save_preset", "", c.facade.SavePreset(ctx, preset.Name, preset.Parameters))
		cancel()

		return func() {
			if err == nil {
				err = c.catalog.Add(preset)
			}
			c.observe("save_preset", err)
			if err != nil {
				c.fail("save_preset", err)
			} else {
				c.logger.Info("Workflow", "preset saved", map[string]interface{}{"preset": preset.Name})
				c.emit(Event{Type: PresetsChanged})
			}
			if done != nil {
				done(err)
			}
		}
	})
	return nil
}

func pathsOf(records []*models.ImageRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Path
	}
	return out
}

func sameAdjustments(a, b map[string]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if bv, ok := b[k]; !ok || bv != v {
			return false
		}
	}
	return true
}
