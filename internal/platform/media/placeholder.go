package media

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	placeholderWidth  = 512
	placeholderHeight = 288
)

// Placeholder yields the image substituted when an illustration could not be generated.
type Placeholder interface {
	ImageURL() string
}

// URLPlaceholder returns a fixed hosted image.
type URLPlaceholder string

func (u URLPlaceholder) ImageURL() string { return string(u) }

// RenderedPlaceholder draws a neutral 512x288 PNG once and serves it as a data URI, for
// deployments that cannot reach an external placeholder host.
type RenderedPlaceholder struct {
	Label string

	once sync.Once
	uri  string
}

func NewRenderedPlaceholder(label string) *RenderedPlaceholder {
	return &RenderedPlaceholder{Label: label}
}

func (p *RenderedPlaceholder) ImageURL() string {
	p.once.Do(func() {
		b, err := RenderPlaceholderPNG(p.Label)
		if err != nil {
			return
		}
		p.uri = DataURI("image/png", b)
	})
	return p.uri
}

func RenderPlaceholderPNG(label string) ([]byte, error) {
	if label == "" {
		label = fmt.Sprintf("%d x %d", placeholderWidth, placeholderHeight)
	}
	dc := gg.NewContext(placeholderWidth, placeholderHeight)
	dc.SetRGB255(204, 204, 204)
	dc.Clear()
	dc.SetRGB255(150, 150, 150)
	dc.SetLineWidth(2)
	dc.DrawRectangle(1, 1, placeholderWidth-2, placeholderHeight-2)
	dc.Stroke()
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB255(90, 90, 90)
	dc.DrawStringAnchored(label, placeholderWidth/2, placeholderHeight/2, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode placeholder: %w", err)
	}
	return buf.Bytes(), nil
}
