package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/ivlev/leet2video/internal/distribution"
	"github.com/ivlev/leet2video/internal/episode"
)

// Badge geometry, relative to the bottom-left corner
const (
	BadgeX      = 50
	BadgeWidth  = 100
	BadgeHeight = 40
	badgeInset  = 100
	qrSize      = 180
	margin      = 50
)

var badgeColors = map[string]string{
	"Easy":   "#4caf50",
	"Medium": "#ff9800",
	"Hard":   "#f44336",
}

const unknownBadgeColor = "#757575"

// BadgeColor returns the badge color for a difficulty
func BadgeColor(difficulty string) string {
	if c, ok := badgeColors[difficulty]; ok {
		return c
	}
	return unknownBadgeColor
}

type Generator struct {
	Width     int
	Height    int
	BgColor   string
	TextColor string
	// QRCode draws a code linking to the problem page when the episode has a slug
	QRCode bool

	font *truetype.Font
}

// NewGenerator creates a 1280x720 generator with the dark default palette
func NewGenerator() (*Generator, error) {
	f, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Generator{
		Width:     1280,
		Height:    720,
		BgColor:   "#1a1a1a",
		TextColor: "#ffffff",
		QRCode:    true,
		font:      f,
	}, nil
}

// BadgeRect is where the difficulty badge is drawn
func (g *Generator) BadgeRect() image.Rectangle {
	y := g.Height - badgeInset
	return image.Rect(BadgeX, y, BadgeX+BadgeWidth, y+BadgeHeight)
}

// Generate renders the thumbnail PNG for an episode
func (g *Generator) Generate(data episode.Data) ([]byte, error) {
	img, err := g.Render(data)
	if err != nil {
		return nil, err
	}
	return Encode(img)
}

// Encode writes a rendered thumbnail as PNG
func Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := gg.NewContextForImage(img).EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}

// Render draws the thumbnail and returns the image
func (g *Generator) Render(data episode.Data) (image.Image, error) {
	dc := gg.NewContext(g.Width, g.Height)

	dc.SetHexColor(g.BgColor)
	dc.Clear()

	// Title
	dc.SetFontFace(g.face(60))
	dc.SetHexColor(g.TextColor)
	textWidth := float64(g.Width - 2*margin)
	if g.QRCode {
		textWidth -= qrSize + margin
	}
	dc.DrawStringWrapped(data.Title(), margin, float64(g.Height/2-50), 0, 0.5, textWidth, 1.3, gg.AlignLeft)

	// Difficulty badge
	badge := g.BadgeRect()
	dc.SetHexColor(BadgeColor(data.Difficulty()))
	dc.DrawRectangle(float64(badge.Min.X), float64(badge.Min.Y), BadgeWidth, BadgeHeight)
	dc.Fill()

	dc.SetFontFace(g.face(20))
	dc.SetHexColor(g.TextColor)
	dc.DrawString(data.Difficulty(), float64(badge.Min.X+10), float64(badge.Min.Y+27))

	if g.QRCode && data.Slug() != "" {
		qr, err := g.qrImage(distribution.DeepLinks(data)["leetcode"])
		if err != nil {
			return nil, err
		}
		dc.DrawImage(qr, g.Width-margin-qrSize, g.Height-margin-qrSize)
	}

	return dc.Image(), nil
}

func (g *Generator) face(size float64) font.Face {
	return truetype.NewFace(g.font, &truetype.Options{Size: size})
}

func (g *Generator) qrImage(url string) (image.Image, error) {
	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr code: %w", err)
	}
	code.BackgroundColor = color.White
	code.ForegroundColor = color.Black
	return code.Image(qrSize), nil
}
