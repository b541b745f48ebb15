package common

// Logical screen size. The window scales to it.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)
