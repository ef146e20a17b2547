package watermark

import (
	"bytes"
	"testing"
)

func TestHexToChannels(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b float64
	}{
		{"#FFFFFF", 1, 1, 1},
		{"000000", 0, 0, 0},
		{"#ff0000", 1, 0, 0},
		{"00FF00", 0, 1, 0},
	}
	for _, tc := range cases {
		r, g, b, err := HexToChannels(tc.in)
		if err != nil {
			t.Errorf("HexToChannels(%q) returned error: %v", tc.in, err)
			continue
		}
		if r != tc.r || g != tc.g || b != tc.b {
			t.Errorf("HexToChannels(%q) = (%v, %v, %v), want (%v, %v, %v)",
				tc.in, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func TestHexToChannelsInvalid(t *testing.T) {
	for _, in := range []string{"#ZZZZZZ", "#FFF", "", "#", "12345", "1234567", "gg0000"} {
		if _, _, _, err := HexToChannels(in); err == nil {
			t.Errorf("HexToChannels(%q) succeeded, want FormatError", in)
		} else if _, ok := err.(*FormatError); !ok {
			t.Errorf("HexToChannels(%q) error type = %T, want *FormatError", in, err)
		}
	}
}

func TestRenderCanvasDimensions(t *testing.T) {
	spec := Spec{Label: "DRAFT", Size: 24, Color: "#888888", Transparency: 0.3}
	for _, dims := range [][2]float64{{612, 792}, {595.28, 841.89}, {200, 900}} {
		c, err := Render(spec, dims[0], dims[1])
		if err != nil {
			t.Fatalf("Render(%v): %v", dims, err)
		}
		if c.Width() != dims[0] || c.Height() != dims[1] {
			t.Errorf("canvas dims = (%v, %v), want (%v, %v)",
				c.Width(), c.Height(), dims[0], dims[1])
		}
	}
}

func TestRenderInvalidColor(t *testing.T) {
	_, err := Render(Spec{Label: "X", Size: 12, Color: "#FFF", Transparency: 1}, 612, 792)
	if err == nil {
		t.Fatal("Render with short color succeeded, want FormatError")
	}
	if _, ok := err.(*FormatError); !ok {
		t.Errorf("error type = %T, want *FormatError", err)
	}
}

func TestRenderInvalidSteps(t *testing.T) {
	spec := Spec{Label: "X", Size: 12, Color: "000000", Transparency: 1}
	if _, err := RenderGrid(spec, 612, 792, 0, 100); err == nil {
		t.Error("RenderGrid with zero stepX succeeded")
	}
	if _, err := RenderGrid(spec, 612, 792, 150, -5); err == nil {
		t.Error("RenderGrid with negative stepY succeeded")
	}
}

func TestCanvasBytesIsPDF(t *testing.T) {
	c, err := Render(Spec{Label: "CONFIDENTIAL", Size: 30, Color: "FF0000", Transparency: 0.25}, 612, 792)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(b, []byte("%PDF-")) {
		t.Errorf("canvas bytes do not start with %%PDF- header")
	}
}

func TestTileOriginsCoverPage(t *testing.T) {
	const w, h = 612.0, 792.0
	pts := tileOrigins(w, h, DefaultStepX, DefaultStepY)
	if len(pts) == 0 {
		t.Fatal("no tile origins")
	}

	minX, maxX := pts[0].X, pts[0].X
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	if minX != -100 || minY != -100 {
		t.Errorf("lattice starts at (%v, %v), want (-100, -100)", minX, minY)
	}
	if maxX < w {
		t.Errorf("max tile x = %v, does not reach page width %v", maxX, w)
	}
	if maxY < h {
		t.Errorf("max tile y = %v, does not reach page height %v", maxY, h)
	}
	// No unstamped band wider than a step inside the page bounds.
	if maxX+DefaultStepX < w+overflow {
		t.Errorf("x lattice stops early at %v", maxX)
	}
	if maxY+DefaultStepY < h+overflow {
		t.Errorf("y lattice stops early at %v", maxY)
	}
}

func TestTileOriginsSpacing(t *testing.T) {
	pts := tileOrigins(300, 200, 150, 100)
	seenX := map[float64]bool{}
	for _, p := range pts {
		seenX[p.X] = true
	}
	for _, want := range []float64{-100, 50, 200, 350} {
		if !seenX[want] {
			t.Errorf("missing x origin %v; got %v", want, seenX)
		}
	}
}
