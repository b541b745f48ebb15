package component

import "image/color"

// Rect is a solid colored box drawn at the entity transform. Circle draws
// it as a disc of diameter W instead.
type Rect struct {
	W      float64
	H      float64
	Color  color.RGBA
	Circle bool
}

var RectComponent = NewComponent[Rect]()
