package qr

import "image/color"

// Portal is the preset used for check-in codes.
var Portal = Config{
	Size:            512,
	LogoScale:       0.2,
	Background:      color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Foreground:      color.RGBA{R: 20, G: 20, B: 20, A: 255},
	DotScale:        0.9,
	RecoveryLevel:   3,
	QuietZone:       4,
	LogoBackground:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
	LogoBorderWidth: 4,
}
