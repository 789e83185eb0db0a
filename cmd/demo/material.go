package main

import (
	"image/color"

	"github.com/mazznoer/csscolorparser"

	"github.com/milk9111/scenetween/scene"
)

// material is a data-only component: the renderer reads its bag directly and
// animations retarget "material.color" and "material.opacity".
var materialDef = &scene.ComponentDef{
	Name: "material",
	Schema: scene.Schema{
		"color":   {Type: scene.TypeColor, Default: "white"},
		"opacity": {Type: scene.TypeNumber, Default: 1.0},
	},
}

func materialColor(e *scene.Entity) color.Color {
	inst, ok := e.Component("material")
	if !ok {
		return color.White
	}
	c, ok := inst.Data["color"].(*csscolorparser.Color)
	if !ok || c == nil {
		return color.White
	}
	opacity := 1.0
	if o, ok := inst.Data["opacity"].(float64); ok {
		opacity = o
	}
	alpha := clamp01(c.A) * clamp01(opacity)
	// ebiten expects premultiplied alpha.
	return color.RGBA{
		R: uint8(clamp01(c.R) * alpha * 255),
		G: uint8(clamp01(c.G) * alpha * 255),
		B: uint8(clamp01(c.B) * alpha * 255),
		A: uint8(alpha * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
