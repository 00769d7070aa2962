package annotation

import (
	"io"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"

	chartv1 "github.com/c9s/chartdesk/pkg/chart/v1"
)

// Overlay renders the annotation layer alone on a transparent surface of the given size.
// A zero size falls back to the engine's surface size.
func (e *Engine) Overlay(w io.Writer, format chartv1.Format, width, height int) error {
	if width <= 0 || height <= 0 {
		width, height = px(e.width), px(e.height)
	}
	if width <= 0 || height <= 0 {
		return errors.Errorf("invalid overlay size %dx%d", width, height)
	}

	r, err := format.RendererProvider()(width, height)
	if err != nil {
		return errors.Wrap(err, "unable to create overlay renderer")
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return errors.Wrap(err, "unable to load overlay font")
	}

	r.SetDPI(chart.DefaultDPI)
	r.SetFont(font)
	e.Render(r)

	return errors.Wrap(r.Save(w), "unable to write overlay")
}
