package summary

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strings"
	"time"

	"country-exchange/feature/countries/models"

	"github.com/shopspring/decimal"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Summary is the aggregate a Renderer draws.
type Summary struct {
	TotalCountries  int64
	Top             []models.Country
	LastRefreshedAt *time.Time
}

// Renderer turns a Summary into an image blob.
type Renderer interface {
	Render(s Summary) ([]byte, error)
	ContentType() string
}

var (
	background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	textColor  = color.RGBA{A: 255}
	header     = color.RGBA{R: 25, G: 118, B: 210, A: 255}
	rule       = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// PNGRenderer draws a plain text summary with the built-in 7x13 bitmap font.
type PNGRenderer struct {
	Width  int
	Height int
	TopN   int
}

// NewPNGRenderer creates a renderer sized from cfg.
func NewPNGRenderer(cfg Config) *PNGRenderer {
	r := &PNGRenderer{Width: cfg.Width, Height: cfg.Height, TopN: cfg.TopN}
	if r.Width <= 0 {
		r.Width = 800
	}
	if r.Height <= 0 {
		r.Height = 600
	}
	if r.TopN <= 0 {
		r.TopN = 5
	}
	return r
}

// ContentType implements Renderer.
func (r *PNGRenderer) ContentType() string {
	return "image/png"
}

// Render implements Renderer.
func (r *PNGRenderer) Render(s Summary) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	const margin = 50
	y := 50

	r.text(img, margin, y, header, "Country Currency Summary")
	y += 30
	r.hline(img, margin, r.Width-margin, y)

	y += 40
	r.text(img, margin, y, textColor, fmt.Sprintf("Total Countries: %d", s.TotalCountries))

	y += 30
	refreshed := "Never"
	if s.LastRefreshedAt != nil {
		refreshed = s.LastRefreshedAt.UTC().Format("2006-01-02 15:04:05") + " UTC"
	}
	r.text(img, margin, y, textColor, "Last Refreshed: "+refreshed)

	y += 30
	r.hline(img, margin, r.Width-margin, y)

	y += 40
	r.text(img, margin, y, header, fmt.Sprintf("Top %d Countries by Estimated GDP:", r.TopN))

	y += 20
	for i, c := range s.Top {
		y += 30
		if y > r.Height-margin/2 {
			break
		}
		r.text(img, margin+20, y, textColor, fmt.Sprintf("%d. %s - %s", i+1, c.Name, FormatGDP(c.EstimatedGDP)))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode summary image: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PNGRenderer) text(img draw.Image, x, y int, c color.Color, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func (r *PNGRenderer) hline(img *image.RGBA, x0, x1, y int) {
	draw.Draw(img, image.Rect(x0, y, x1, y+2), &image.Uniform{C: rule}, image.Point{}, draw.Src)
}

// FormatGDP renders a GDP as "$1,234.56", or "N/A" when null.
func FormatGDP(v decimal.NullDecimal) string {
	if !v.Valid {
		return "N/A"
	}
	s := v.Decimal.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, ch := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	return sign + "$" + b.String() + "." + frac
}
