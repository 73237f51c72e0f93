package display

import (
	"maps"
	"slices"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
	"tinygo.org/x/tinyfont/proggy"
)

// Font ids understood by Framebuffer.
const (
	FontSmall    FontID = "proggy_tiny8"
	FontRegular9 FontID = "freesans_regular9"
	// FontRegular18 is an 18px tall font matching the badge's roboto_regular18.
	FontRegular18 FontID = "roboto_regular18"
	FontDefault          = FontRegular18
)

type face struct {
	font   tinyfont.Fonter
	ascent int16 // distance from the top of the text box to the baseline
}

var faces = map[FontID]face{
	FontSmall:     {font: &proggy.TinySZ8pt7b, ascent: 8},
	FontRegular9:  {font: &freesans.Regular9pt7b, ascent: 13},
	FontRegular18: {font: &freesans.Regular12pt7b, ascent: 17},
}

// lookupFace returns the face registered for id and whether it was found.
// Unknown ids fall back to FontDefault.
func lookupFace(id FontID) (face, bool) {
	if f, ok := faces[id]; ok {
		return f, true
	}
	return faces[FontDefault], false
}

// Fonts returns the registered font ids in sorted order.
func Fonts() []FontID {
	return slices.Sorted(maps.Keys(faces))
}
