package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"headshot-viewer/internal/models"
)

// Section is a titled group of controls.
type Section interface {
	Add(obj fyne.CanvasObject)
	Content() fyne.CanvasObject
}

// CurrentImageView is implemented by every panel that follows the current
// image.
type CurrentImageView interface {
	SetCurrentImage(r *models.ImageRecord)
}

// CardSection is a Section drawn as a card.
type CardSection struct {
	card *widget.Card
	body *fyne.Container
}

func NewCardSection(title string) *CardSection {
	body := container.NewVBox()
	return &CardSection{
		card: widget.NewCard(title, "", body),
		body: body,
	}
}

func (s *CardSection) Add(obj fyne.CanvasObject) {
	s.body.Add(obj)
}

func (s *CardSection) Content() fyne.CanvasObject {
	return s.card
}

// Clear removes every control added so far.
func (s *CardSection) Clear() {
	s.body.RemoveAll()
}

// AccordionSection is a Section drawn as one collapsible accordion item.
type AccordionSection struct {
	item *widget.AccordionItem
	body *fyne.Container
}

func NewAccordionSection(title string) *AccordionSection {
	body := container.NewVBox()
	return &AccordionSection{
		item: widget.NewAccordionItem(title, body),
		body: body,
	}
}

func (s *AccordionSection) Add(obj fyne.CanvasObject) {
	s.body.Add(obj)
}

func (s *AccordionSection) Content() fyne.CanvasObject {
	return s.body
}

func (s *AccordionSection) Item() *widget.AccordionItem {
	return s.item
}

var (
	_ Section = (*CardSection)(nil)
	_ Section = (*AccordionSection)(nil)
)
