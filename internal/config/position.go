package config

// Position represents the clock position on screen.
type Position string

const (
	PositionTopLeft      Position = "top-left"
	PositionTopRight     Position = "top-right"
	PositionTopCenter    Position = "top-center"
	PositionBottomLeft   Position = "bottom-left"
	PositionBottomRight  Position = "bottom-right"
	PositionBottomCenter Position = "bottom-center"
	PositionCenter       Position = "center"
)

// ValidPositions returns all valid position values.
func ValidPositions() []Position {
	return []Position{
		PositionTopLeft,
		PositionTopRight,
		PositionTopCenter,
		PositionBottomLeft,
		PositionBottomRight,
		PositionBottomCenter,
		PositionCenter,
	}
}

// Anchors describes which screen edges a layer surface is attached to.
// An edge that is not anchored gets no margin.
type Anchors struct {
	Top    bool
	Right  bool
	Bottom bool
	Left   bool
}

// Margins holds per-edge margins in pixels.
type Margins struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Anchors returns the edges to anchor for the position.
// Centered axes anchor neither edge so the compositor centers the surface.
func (p Position) Anchors() Anchors {
	switch p {
	case PositionTopLeft:
		return Anchors{Top: true, Left: true}
	case PositionTopCenter:
		return Anchors{Top: true}
	case PositionBottomLeft:
		return Anchors{Bottom: true, Left: true}
	case PositionBottomRight:
		return Anchors{Bottom: true, Right: true}
	case PositionBottomCenter:
		return Anchors{Bottom: true}
	case PositionCenter:
		return Anchors{}
	default:
		return Anchors{Top: true, Right: true}
	}
}

// Margins returns the margins for the window's position and offsets.
func (w WindowConfig) Margins() Margins {
	a := Position(w.Position).Anchors()

	var m Margins
	if a.Top {
		m.Top = w.OffsetY
	}
	if a.Bottom {
		m.Bottom = w.OffsetY
	}
	if a.Left {
		m.Left = w.OffsetX
	}
	if a.Right {
		m.Right = w.OffsetX
	}
	return m
}
