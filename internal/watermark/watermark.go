// Package watermark renders a tiled diagonal text watermark onto a page-sized
// canvas and merges it beneath the pages of an existing PDF.
package watermark

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Default tile spacing in points.
const (
	DefaultStepX = 150.0
	DefaultStepY = 100.0
)

// overflow extends the lattice past the page edges so the 45° rotation leaves
// no blank corners.
const overflow = 100.0

// Spec fully determines a rendered tile pattern.
type Spec struct {
	Label        string  `json:"label"`
	Size         int     `json:"size"`         // font point size
	Color        string  `json:"color"`        // 6-hex-digit RGB, optional leading #
	Transparency float64 `json:"transparency"` // 0 transparent .. 1 opaque
}

// FormatError reports a color string that cannot be decoded.
type FormatError struct {
	Color string
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("watermark: invalid color %q: %s", e.Color, e.Msg)
}

// HexToChannels decodes a 6-hex-digit RGB string, with an optional leading "#",
// into channel values normalized to [0,1].
func HexToChannels(s string) (r, g, b float64, err error) {
	hex := s
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return 0, 0, 0, &FormatError{Color: s, Msg: "want exactly 6 hex digits"}
	}
	var ch [3]float64
	for i := 0; i < 3; i++ {
		v, perr := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if perr != nil {
			return 0, 0, 0, &FormatError{Color: s, Msg: "non-hex digit"}
		}
		ch[i] = float64(v) / 255
	}
	return ch[0], ch[1], ch[2], nil
}

// Canvas is a single-page drawing surface carrying the rendered tile pattern.
type Canvas struct {
	pdf    *gofpdf.Fpdf
	width  float64
	height float64
}

func (c *Canvas) Width() float64  { return c.width }
func (c *Canvas) Height() float64 { return c.height }

// Bytes serializes the canvas as a one-page PDF.
func (c *Canvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("watermark: serializing canvas: %w", err)
	}
	return buf.Bytes(), nil
}

// Render renders spec onto a (pageW, pageH) canvas with the default spacing.
func Render(spec Spec, pageW, pageH float64) (*Canvas, error) {
	return RenderGrid(spec, pageW, pageH, DefaultStepX, DefaultStepY)
}

// RenderGrid renders the tile pattern with explicit spacing. At every lattice
// origin the coordinate system is translated and rotated 45°, the label drawn
// centered at the new origin, and the graphics state restored.
func RenderGrid(spec Spec, pageW, pageH, stepX, stepY float64) (*Canvas, error) {
	if stepX <= 0 || stepY <= 0 {
		return nil, fmt.Errorf("watermark: step sizes must be positive, got (%v, %v)", stepX, stepY)
	}
	r, g, b, err := HexToChannels(spec.Color)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", float64(spec.Size))
	pdf.SetTextColor(int(r*255), int(g*255), int(b*255))
	pdf.SetAlpha(spec.Transparency, "Normal")

	half := pdf.GetStringWidth(spec.Label) / 2
	for _, origin := range tileOrigins(pageW, pageH, stepX, stepY) {
		pdf.TransformBegin()
		pdf.TransformTranslate(origin.X, origin.Y)
		pdf.TransformRotate(45, 0, 0)
		pdf.Text(-half, 0, spec.Label)
		pdf.TransformEnd()
	}
	if pdf.Err() {
		return nil, fmt.Errorf("watermark: rendering grid: %w", pdf.Error())
	}
	return &Canvas{pdf: pdf, width: pageW, height: pageH}, nil
}

// Point is a tile origin in page coordinates.
type Point struct {
	X, Y float64
}

// tileOrigins enumerates the lattice origins: x from -overflow up to but not
// including pageW+overflow stepping stepX, y likewise for the page height.
func tileOrigins(pageW, pageH, stepX, stepY float64) []Point {
	var pts []Point
	for x := -overflow; x < pageW+overflow; x += stepX {
		for y := -overflow; y < pageH+overflow; y += stepY {
			pts = append(pts, Point{X: x, Y: y})
		}
	}
	return pts
}

// Merge overlays the layer page beneath every page of target: the watermark
// is painted first so the original content stays on top. layer is a one-page
// PDF, normally Canvas.Bytes(). password unlocks an encrypted target and may
// be empty.
func Merge(target, layer []byte, password string) ([]byte, error) {
	dir, err := os.MkdirTemp("", "watermark")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	layerPath := filepath.Join(dir, "layer.pdf")
	inPath := filepath.Join(dir, "in.pdf")
	outPath := filepath.Join(dir, "out.pdf")
	if err := os.WriteFile(layerPath, layer, 0o600); err != nil {
		return nil, err
	}
	if err := os.WriteFile(inPath, target, 0o600); err != nil {
		return nil, err
	}

	wm, err := api.PDFWatermark(layerPath, "pos:c, scalefactor:1 abs, rotation:0", false, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("watermark: building merge layer: %w", err)
	}
	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}
	if err := api.AddWatermarksFile(inPath, outPath, nil, wm, conf); err != nil {
		return nil, fmt.Errorf("watermark: merging into target: %w", err)
	}
	return os.ReadFile(outPath)
}
