package qr

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

type Config struct {
	LogoPath        string
	Size            int
	LogoScale       float64 // Logo size relative to Size
	Background      color.Color
	Foreground      color.Color
	DotScale        float64 // Dot diameter relative to a module, 1 draws touching dots
	RecoveryLevel   int
	QuietZone       int // Quiet zone width in modules
	LogoBackground  color.Color
	LogoBorderWidth float64 // Width of logo border
}

// Generate renders content as a PNG QR code and returns the encoded image.
func (c Config) Generate(content string) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr: empty content")
	}

	code, err := qrcode.New(content, qrcode.RecoveryLevel(c.RecoveryLevel))
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true
	bitmap := code.Bitmap()

	dc := gg.NewContext(c.Size, c.Size)
	dc.SetColor(c.Background)
	dc.Clear()

	modules := len(bitmap) + 2*c.QuietZone
	moduleSize := float64(c.Size) / float64(modules)
	dotScale := c.DotScale
	if dotScale <= 0 || dotScale > 1 {
		dotScale = 1
	}
	radius := moduleSize * dotScale / 2

	dc.SetColor(c.Foreground)
	for y, row := range bitmap {
		for x, dark := range row {
			if !dark {
				continue
			}
			cx := (float64(x+c.QuietZone) + 0.5) * moduleSize
			cy := (float64(y+c.QuietZone) + 0.5) * moduleSize
			dc.DrawCircle(cx, cy, radius)
		}
	}
	dc.Fill()

	if c.LogoPath != "" {
		logo, err := gg.LoadImage(c.LogoPath)
		if err != nil {
			return nil, err
		}
		c.drawLogo(dc, logo)
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawLogo places a circular logo in the middle of the code.
// The high recovery level keeps the covered modules readable.
func (c Config) drawLogo(dc *gg.Context, logo image.Image) {
	logoSize := int(float64(c.Size) * c.LogoScale)
	if logoSize <= 0 {
		return
	}
	center := float64(c.Size) / 2

	dc.SetColor(c.LogoBackground)
	dc.DrawCircle(center, center, float64(logoSize)/2+c.LogoBorderWidth)
	dc.Fill()

	resized := resize.Resize(uint(logoSize), uint(logoSize), logo, resize.Lanczos3)

	dc.Push()
	dc.DrawCircle(center, center, float64(logoSize)/2)
	dc.Clip()
	dc.DrawImageAnchored(resized, int(center), int(center), 0.5, 0.5)
	dc.ResetClip()
	dc.Pop()
}
