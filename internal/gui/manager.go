package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"

	"headshot-viewer/internal/gui/components"
	"headshot-viewer/internal/logger"
	"headshot-viewer/internal/settings"
	"headshot-viewer/internal/workflow"
)

const (
	TabGallery = iota
	TabEditor
	TabHue
)

const Author = "Headshot Viewer v1.0"

// Manager owns the window layout: header, tabs, footer and status bar.
type Manager struct {
	window fyne.Window
	logger logger.Logger

	header  *components.Header
	tabs    *container.AppTabs
	footer  *components.Footer
	status  *components.StatusBar
	gallery *components.GalleryPanel
	editor  *components.EditorPanel
	hue     *components.HuePanel

	// views follow the coordinator's current image.
	views []components.CurrentImageView
}

func NewManager(window fyne.Window, title string, log logger.Logger) *Manager {
	m := &Manager{
		window:  window,
		logger:  log,
		header:  components.NewHeader(title),
		status:  components.NewStatusBar(),
		gallery: components.NewGalleryPanel(workflow.Filters(), workflow.Sorts(), settings.PreviewQualities()),
		editor:  components.NewEditorPanel(),
		hue:     components.NewHuePanel(),
	}

	m.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon("Headshots Gallery", theme.GridIcon(), m.gallery.Content()),
		container.NewTabItemWithIcon("Editor", theme.DocumentCreateIcon(), m.editor.Content()),
		container.NewTabItemWithIcon("Hue", theme.ColorPaletteIcon(), m.hue.Content()),
	)
	m.footer = components.NewFooter(Author, len(m.tabs.Items))
	m.views = []components.CurrentImageView{m.editor, m.hue}

	log.Info("GUIManager", "layout initialized", map[string]interface{}{
		"tabs":            len(m.tabs.Items),
		"gallery_columns": components.GalleryColumns,
	})
	return m
}

func (m *Manager) GetMainContainer() fyne.CanvasObject {
	return container.NewBorder(
		container.NewVBox(m.header.GetContainer()),
		container.NewVBox(m.status.GetContainer(), m.footer.GetContainer()),
		nil, nil,
		m.tabs,
	)
}

func (m *Manager) GetWindow() fyne.Window {
	return m.window
}

// SelectTab switches tabs; the tab change handler runs as for a click.
func (m *Manager) SelectTab(index int) {
	m.tabs.SelectIndex(index)
}

func (m *Manager) SetTabHandler(handler func(int)) {
	m.tabs.OnSelected = func(*container.TabItem) {
		handler(m.tabs.SelectedIndex())
	}
}

func (m *Manager) SelectedTab() int {
	return m.tabs.SelectedIndex()
}

func (m *Manager) ShowError(title string, err error) {
	m.logger.Error("GUIManager", err, map[string]interface{}{"title": title})
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), m.window)
}

func (m *Manager) ShowInformation(title, message string) {
	dialog.ShowInformation(title, message, m.window)
}

func (m *Manager) Header() *components.Header        { return m.header }
func (m *Manager) Footer() *components.Footer        { return m.footer }
func (m *Manager) Status() *components.StatusBar     { return m.status }
func (m *Manager) Gallery() *components.GalleryPanel { return m.gallery }
func (m *Manager) Editor() *components.EditorPanel   { return m.editor }
func (m *Manager) Hue() *components.HuePanel         { return m.hue }
