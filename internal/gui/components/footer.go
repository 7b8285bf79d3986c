package components

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ClockLayout is the footer timestamp format.
const ClockLayout = "Jan 02 2006 @ 03:04 PM"

type Footer struct {
	container  *fyne.Container
	position   *widget.Label
	clock      *widget.Label
	count      int
	current    int
	onNavigate func(index int)
}

func NewFooter(author string, pages int) *Footer {
	f := &Footer{count: pages}

	f.position = widget.NewLabel("")
	f.clock = widget.NewLabel("")

	home := widget.NewButtonWithIcon("", theme.HomeIcon(), func() { f.navigate(0) })
	prev := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { f.navigate(Wrap(f.current-1, f.count)) })
	next := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { f.navigate(Wrap(f.current+1, f.count)) })

	nav := container.NewHBox(home, prev, f.position, next)

	f.container = container.NewBorder(nil, nil,
		widget.NewLabel(author),
		f.clock,
		container.NewCenter(nav),
	)
	f.SetPosition(0)
	return f
}

func (f *Footer) GetContainer() *fyne.Container {
	return f.container
}

func (f *Footer) SetNavigateHandler(handler func(int)) {
	f.onNavigate = handler
}

// SetPosition updates the "n of m" label without navigating.
func (f *Footer) SetPosition(index int) {
	f.current = index
	f.position.SetText(fmt.Sprintf("%d of %d", index+1, f.count))
}

func (f *Footer) Position() string {
	return f.position.Text
}

func (f *Footer) SetTime(t time.Time) {
	f.clock.SetText("Last updated: " + t.Format(ClockLayout))
}

func (f *Footer) Clock() string {
	return f.clock.Text
}

func (f *Footer) navigate(index int) {
	f.SetPosition(index)
	if f.onNavigate != nil {
		f.onNavigate(index)
	}
}

// Wrap maps i into [0, n) so that stepping past either end wraps around.
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
