package screens

import (
	"fmt"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/activities/activity"
	"github.com/milk9111/activities/prefabs"
)

// Title is the menu activity built from title.yaml.
type Title struct {
	activity.Base

	spec    *prefabs.TitleSpec
	ui      *ebitenui.UI
	leaving bool
	err     error
}

func (t *Title) Init() {
	spec, err := prefabs.LoadTitleSpec()
	if err != nil {
		t.err = err
		return
	}
	router, ok := RouterOf(&t.Base)
	if !ok {
		t.err = fmt.Errorf("screens: title has no router")
		return
	}
	spec.Items = menuItems(router, spec.Items)
	t.spec = spec
	t.ui = newTitleUI(spec, t.choose)
}

// menuItems drops entries the router would reject so a typo in title.yaml
// costs one button, not the game.
func menuItems(router *Router, items []prefabs.MenuItemSpec) []prefabs.MenuItemSpec {
	out := items[:0:0]
	for _, item := range items {
		if err := router.Validate(item.Target, item.Transition); err != nil {
			log.Printf("title: skipping menu item %q: %v", item.Label, err)
			continue
		}
		out = append(out, item)
	}
	return out
}

// choose switches to the item's target. A failure is logged and the menu
// stays up.
func (t *Title) choose(item prefabs.MenuItemSpec) {
	if t.leaving {
		return
	}
	router, ok := RouterOf(&t.Base)
	if !ok {
		log.Printf("title: menu %q: no router", item.Label)
		return
	}
	if err := router.Go(item.Target, item.Transition); err != nil {
		log.Printf("title: menu %q: %v", item.Label, err)
	}
}

// Err returns the error that stopped Init, if any.
func (t *Title) Err() error {
	return t.err
}

// HandleTransitionStarted stops the menu from taking clicks while a fade
// away from the title is running.
func (t *Title) HandleTransitionStarted() {
	t.leaving = true
}

func (t *Title) Update() error {
	if t.err != nil {
		return t.err
	}
	if t.leaving || t.ui == nil || t.Director().InProgress() {
		return nil
	}
	t.ui.Update()
	return t.err
}

func (t *Title) Draw(screen *ebiten.Image) {
	if t.ui == nil {
		return
	}
	t.ui.Draw(screen)
}

// newTitleUI builds a centered column with the heading and one button per
// menu item, in the same style as the pause menu it grew out of.
func newTitleUI(spec *prefabs.TitleSpec, choose func(prefabs.MenuItemSpec)) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	hoverImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	face := uiFace
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(320, 240),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(spec.Heading, &face, textColor),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	))

	for _, item := range spec.Items {
		item := item
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: hoverImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(item.Label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				choose(item)
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
