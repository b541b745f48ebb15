package screens

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var (
	uiFace    text.Face = text.NewGoXFace(basicfont.Face7x13)
	textColor           = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// drawCentered draws s centered on (x, y) at the given scale.
func drawCentered(screen *ebiten.Image, s string, x, y, scale float64) {
	w, h := text.Measure(s, uiFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(textColor)
	text.Draw(screen, s, uiFace, op)
}
