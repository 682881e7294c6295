// Package imaging renders the side-by-side try-on comparison image.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"
)

const (
	Padding     = 40
	Gap         = 30
	RowHeight   = 600
	FooterSpace = 120
)

var (
	background = color.White
	labelColor = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	brandColor = color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	dateColor  = color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
)

const (
	garmentLabel = "Garment"
	personLabel  = "Original"
	resultLabel  = "Virtual Try-On Result"
	footerText   = "Powered by Alzia Virtual Try-On"
)

// Compositor lays out garment | person | result on one white canvas, each
// scaled to RowHeight, with a label above every panel and a footer below.
type Compositor struct {
	face font.Face
}

func NewCompositor() *Compositor {
	return &Compositor{face: basicfont.Face7x13}
}

// Compose decodes the three images (JPEG, PNG, GIF or WebP) and returns the
// composite as PNG.
func (c *Compositor) Compose(garment, person, result []byte, at time.Time) ([]byte, error) {
	panels := make([]image.Image, 0, 3)
	for _, in := range []struct {
		name string
		data []byte
	}{{"garment", garment}, {"person", person}, {"result", result}} {
		img, _, err := image.Decode(bytes.NewReader(in.data))
		if err != nil {
			return nil, fmt.Errorf("decode %s image: %w", in.name, err)
		}
		panels = append(panels, img)
	}

	canvas := c.render(panels, [3]string{garmentLabel, personLabel, resultLabel}, at)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode composite: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Compositor) render(panels []image.Image, labels [3]string, at time.Time) *image.RGBA {
	widths := make([]int, len(panels))
	total := 2*Padding + Gap*(len(panels)-1)
	for i, p := range panels {
		widths[i] = ScaledWidth(p.Bounds())
		total += widths[i]
	}
	height := RowHeight + 2*Padding + FooterSpace

	canvas := image.NewRGBA(image.Rect(0, 0, total, height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	x := Padding
	for i, p := range panels {
		dst := image.Rect(x, Padding, x+widths[i], Padding+RowHeight)
		draw.CatmullRom.Scale(canvas, dst, p, p.Bounds(), draw.Over, nil)
		c.centered(canvas, labels[i], x+widths[i]/2, Padding-15, labelColor)
		x += widths[i] + Gap
	}

	c.centered(canvas, footerText, total/2, height-40, brandColor)
	c.centered(canvas, at.Format("January 2, 2006"), total/2, height-20, dateColor)
	return canvas
}

// centered draws text with its baseline at y, horizontally centred on cx.
func (c *Compositor) centered(dst draw.Image, text string, cx, y int, col color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(col), Face: c.face}
	w := d.MeasureString(text)
	d.Dot = fixed.Point26_6{X: fixed.I(cx) - w/2, Y: fixed.I(y)}
	d.DrawString(text)
}

// ScaledWidth is the panel width once the image is scaled to RowHeight,
// keeping its aspect ratio.
func ScaledWidth(b image.Rectangle) int {
	if b.Dy() == 0 {
		return 0
	}
	return (b.Dx()*RowHeight + b.Dy()/2) / b.Dy()
}
