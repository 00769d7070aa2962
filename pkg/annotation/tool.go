package annotation

import (
	"fmt"
	"strings"
)

// ToolMode is the active annotation tool of a session.
type ToolMode string

const (
	ToolNone       ToolMode = "none"
	ToolLine       ToolMode = "line"
	ToolHorizontal ToolMode = "horizontal"
	ToolRectangle  ToolMode = "rectangle"
	ToolFibonacci  ToolMode = "fibonacci"
	ToolText       ToolMode = "text"
)

var SupportedTools = []ToolMode{ToolNone, ToolLine, ToolHorizontal, ToolRectangle, ToolFibonacci, ToolText}

// KeyEscape is the key name of the escape key as delivered by the input layer.
const (
	KeyEscape = "Escape"
	KeyEnter  = "Enter"
)

// toolKeys binds the single-letter shortcuts to the tool they toggle.
var toolKeys = map[string]ToolMode{
	"l": ToolLine,
	"h": ToolHorizontal,
	"r": ToolRectangle,
	"f": ToolFibonacci,
	"t": ToolText,
}

func ParseToolMode(s string) (ToolMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ToolNone, nil
	}

	for _, t := range SupportedTools {
		if string(t) == s {
			return t, nil
		}
	}

	return ToolNone, fmt.Errorf("unsupported annotation tool %q", s)
}

// ToolForKey returns the tool bound to a shortcut key.
func ToolForKey(key string) (ToolMode, bool) {
	t, ok := toolKeys[key]
	return t, ok
}

// ShapeKind returns the kind of shape the tool commits.
func (t ToolMode) ShapeKind() (ShapeKind, bool) {
	switch t {
	case ToolLine:
		return ShapeLine, true
	case ToolHorizontal:
		return ShapeHorizontalLine, true
	case ToolRectangle:
		return ShapeRectangle, true
	case ToolFibonacci:
		return ShapeFibonacci, true
	case ToolText:
		return ShapeText, true
	}
	return "", false
}

// IsGesture reports whether the tool draws with a press-drag-release gesture.
func (t ToolMode) IsGesture() bool {
	switch t {
	case ToolLine, ToolHorizontal, ToolRectangle, ToolFibonacci:
		return true
	}
	return false
}

func (t ToolMode) String() string {
	return string(t)
}
