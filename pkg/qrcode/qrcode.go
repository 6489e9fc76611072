package qr

import (
	"bytes"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

// Config describes one QR rendering. Zero values fall back to a plain
// black-on-white code without a logo.
type Config struct {
	Content       string
	LogoPath      string
	Size          int
	LogoScale     float64
	Background    color.Color
	Foreground    color.Color
	RecoveryLevel int
}

// Generate renders the QR code as a PNG. When a logo path is set the
// image is resized, framed in a circle and drawn over the center; the
// recovery level must be high enough to survive the covered modules.
func (c *Config) Generate() ([]byte, error) {
	if c.Size == 0 {
		c.Size = 512
	}
	if c.Background == nil {
		c.Background = color.White
	}
	if c.Foreground == nil {
		c.Foreground = color.Black
	}

	code, err := qrcode.New(c.Content, qrcode.RecoveryLevel(c.RecoveryLevel))
	if err != nil {
		return nil, err
	}
	code.BackgroundColor = colorToRGBA(c.Background)
	code.ForegroundColor = colorToRGBA(c.Foreground)

	dc := gg.NewContext(c.Size, c.Size)
	dc.SetColor(c.Background)
	dc.Clear()
	dc.DrawImage(code.Image(c.Size), 0, 0)

	if c.LogoPath != "" {
		logo, err := gg.LoadImage(c.LogoPath)
		if err != nil {
			return nil, err
		}
		scale := c.LogoScale
		if scale == 0 {
			scale = 0.2
		}
		logoSize := int(float64(c.Size) * scale)
		resized := resize.Resize(uint(logoSize), uint(logoSize), logo, resize.Lanczos3)

		cx := float64(c.Size) / 2
		cy := float64(c.Size) / 2
		dc.SetColor(c.Background)
		dc.DrawCircle(cx, cy, float64(logoSize)/2+4)
		dc.Fill()
		dc.DrawImage(resized, (c.Size-logoSize)/2, (c.Size-logoSize)/2)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func colorToRGBA(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
