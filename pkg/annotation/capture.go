package annotation

import (
	"sync"

	"github.com/c9s/chartdesk/pkg/types"
)

// textCapture is the short-lived input surface requested from the presenter for a text annotation.
// Whichever exit path fires first dismisses it, later ones are no-ops.
type textCapture struct {
	anchor    types.Point
	presenter Presenter

	dismissOnce sync.Once
}

func newTextCapture(anchor types.Point, presenter Presenter) *textCapture {
	c := &textCapture{anchor: anchor, presenter: presenter}
	presenter.RequestTextCapture(anchor)
	return c
}

// dismiss asks the presenter to remove the capture surface. It returns false when the
// capture was already dismissed.
func (c *textCapture) dismiss() (first bool) {
	c.dismissOnce.Do(func() {
		first = true
		c.presenter.DismissTextCapture()
	})
	return first
}
