package gui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"headshot-viewer/internal/settings"
)

// SetupMenus installs the main menu. quit closes the application; stats,
// when set, backs the Debug menu's statistics report.
func (c *Controller) SetupMenus(quit func(), stats func() string) {
	window := c.manager.GetWindow()

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Choose Directory...", c.ChooseDirectory),
		fyne.NewMenuItem("Load Selected Headshots", c.LoadSelected),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Edits", c.SaveCurrent),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", quit),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Save Adjustments as Preset...", c.showSavePreset),
		fyne.NewMenuItem("Reset Adjustments", c.ResetCurrent),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", c.showSettings),
	)

	menus := []*fyne.Menu{fileMenu, editMenu}
	if stats != nil {
		menus = append(menus, fyne.NewMenu("Debug",
			fyne.NewMenuItem("Backend Statistics", func() {
				dialog.ShowInformation("Backend Statistics", stats(), window)
			}),
		))
	}
	window.SetMainMenu(fyne.NewMainMenu(menus...))
}

func (c *Controller) showSavePreset() {
	name := widget.NewEntry()
	name.SetPlaceHolder("Preset name")

	dialog.ShowForm("Save Preset", "Save", "Cancel",
		[]*widget.FormItem{widget.NewFormItem("Name", name)},
		func(ok bool) {
			if ok {
				c.SavePreset(name.Text)
			}
		}, c.manager.GetWindow())
}

func (c *Controller) showSettings() {
	current := c.store.Values()

	autoSave := widget.NewCheck("Save edits when switching images", nil)
	autoSave.SetChecked(current.AutoSave)
	quality := widget.NewSelect(settings.PreviewQualities(), nil)
	quality.SetSelected(current.PreviewQuality)
	batchSize := widget.NewEntry()
	batchSize.SetText(strconv.Itoa(current.BatchSize))
	batchSize.Validator = positiveInt
	timeout := widget.NewEntry()
	timeout.SetText(strconv.Itoa(current.APITimeout))
	timeout.Validator = positiveInt

	items := []*widget.FormItem{
		widget.NewFormItem("Auto-save", autoSave),
		widget.NewFormItem("Preview quality", quality),
		widget.NewFormItem("Batch size", batchSize),
		widget.NewFormItem("API timeout (s)", timeout),
	}

	dialog.ShowForm("Settings", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			return
		}
		next := current
		next.AutoSave = autoSave.Checked
		next.PreviewQuality = quality.Selected
		next.BatchSize, _ = strconv.Atoi(batchSize.Text)
		next.APITimeout, _ = strconv.Atoi(timeout.Text)
		if err := c.applySettings(next); err != nil {
			c.handleError("Settings not saved", err)
			return
		}
		c.manager.Status().SetStatus("Settings saved")
	}, c.manager.GetWindow())
}

func positiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if n < 1 {
		return strconv.ErrRange
	}
	return nil
}
