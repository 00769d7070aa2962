package annotation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/c9s/chartdesk/pkg/types"
)

var ErrEmptyText = errors.New("text annotation must not be empty")

type ShapeKind string

const (
	ShapeLine           ShapeKind = "line"
	ShapeHorizontalLine ShapeKind = "horizontal"
	ShapeRectangle      ShapeKind = "rectangle"
	ShapeFibonacci      ShapeKind = "fibonacci"
	ShapeText           ShapeKind = "text"
)

// Shape is a committed annotation in surface pixels. Text shapes use Start as their
// anchor and leave End zero, every other kind uses Start and End.
type Shape struct {
	Kind  ShapeKind   `json:"kind"`
	Start types.Point `json:"start"`
	End   types.Point `json:"end,omitempty"`
	Text  string      `json:"text,omitempty"`
}

func NewLine(start, end types.Point) Shape {
	return Shape{Kind: ShapeLine, Start: start, End: end}
}

// NewHorizontalLine spans the full surface width at the y of the given point.
func NewHorizontalLine(at types.Point, width float64) Shape {
	return Shape{
		Kind:  ShapeHorizontalLine,
		Start: types.NewPoint(0, at.Y),
		End:   types.NewPoint(width, at.Y),
	}
}

func NewRectangle(start, end types.Point) Shape {
	return Shape{Kind: ShapeRectangle, Start: start, End: end}
}

func NewFibonacci(start, end types.Point) Shape {
	return Shape{Kind: ShapeFibonacci, Start: start, End: end}
}

// NewText trims the text and rejects it when nothing is left.
func NewText(anchor types.Point, text string) (Shape, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Shape{}, ErrEmptyText
	}
	return Shape{Kind: ShapeText, Start: anchor, Text: text}, nil
}

// NewGestureShape builds the shape a drag gesture of the given kind produces.
func NewGestureShape(kind ShapeKind, start, end types.Point, width float64) (Shape, error) {
	switch kind {
	case ShapeLine:
		return NewLine(start, end), nil
	case ShapeHorizontalLine:
		return NewHorizontalLine(start, width), nil
	case ShapeRectangle:
		return NewRectangle(start, end), nil
	case ShapeFibonacci:
		return NewFibonacci(start, end), nil
	}
	return Shape{}, fmt.Errorf("shape kind %q is not drawn with a gesture", kind)
}

// Anchor is the position of a text shape.
func (s Shape) Anchor() types.Point {
	return s.Start
}

func (s Shape) Validate() error {
	switch s.Kind {
	case ShapeLine, ShapeHorizontalLine, ShapeRectangle, ShapeFibonacci:
		return nil
	case ShapeText:
		if strings.TrimSpace(s.Text) == "" {
			return ErrEmptyText
		}
		return nil
	}
	return fmt.Errorf("unknown shape kind %q", s.Kind)
}

func (s Shape) String() string {
	if s.Kind == ShapeText {
		return fmt.Sprintf("%s %q at %s", s.Kind, s.Text, s.Start)
	}
	return fmt.Sprintf("%s %s -> %s", s.Kind, s.Start, s.End)
}
