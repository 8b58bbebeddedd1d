package render

import (
	"image/color"
	"testing"

	"gridfire/internal/config"
)

func TestBuildWallTexture_Deterministic(t *testing.T) {
	base := color.RGBA{110, 100, 95, 255}
	a := buildWallTexture(1, base)
	b := buildWallTexture(1, base)

	for i := range a.img.Pix {
		if a.img.Pix[i] != b.img.Pix[i] {
			t.Fatal("Expected identical pixels for identical inputs")
		}
	}
}

func TestBuildWallTexture_StripsMatchImage(t *testing.T) {
	tex := buildWallTexture(3, color.RGBA{120, 70, 60, 255})
	if len(tex.strips) != texSize {
		t.Fatalf("Expected %d strips, got %d", texSize, len(tex.strips))
	}
	for x := 0; x < texSize; x++ {
		strip := tex.strips[x]
		if strip.Bounds().Dx() != 1 || strip.Bounds().Dy() != texSize {
			t.Fatalf("strip %d: expected 1x%d, got %v", x, texSize, strip.Bounds())
		}
		for y := 0; y < texSize; y++ {
			if strip.RGBAAt(0, y) != tex.img.RGBAAt(x, y) {
				t.Errorf("strip %d row %d: pixel differs from source texture", x, y)
			}
		}
	}
}

func TestTextureBank_UnknownCodeReturnsNil(t *testing.T) {
	cfg := config.Default()
	tb := newTextureBank(cfg, 0)

	if tb.strip(1, 0) == nil {
		t.Error("Expected a strip for a palette code")
	}
	if tb.strip(99, 0) != nil {
		t.Error("Expected nil strip for a code outside the palette")
	}
}

func TestTextureBank_StripClampsColumn(t *testing.T) {
	cfg := config.Default()
	tb := newTextureBank(cfg, 0)

	if tb.strip(1, -5) == nil {
		t.Error("Expected negative column clamped, not nil")
	}
	if tb.strip(1, texSize+10) == nil {
		t.Error("Expected overflow column clamped, not nil")
	}
}

func TestScaleChannel_Saturates(t *testing.T) {
	if got := scaleChannel(200, 1.25); got != 250 {
		t.Errorf("Expected 250, got %d", got)
	}
	if got := scaleChannel(250, 1.25); got != 255 {
		t.Errorf("Expected saturation at 255, got %d", got)
	}
	if got := scaleChannel(100, 0); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}

func TestTexturePatterns_FactorsSane(t *testing.T) {
	for i, pattern := range texturePatterns {
		for y := 0; y < texSize; y++ {
			for x := 0; x < texSize; x++ {
				f := pattern(x, y)
				if f <= 0 || f > 1.5 {
					t.Fatalf("pattern %d at (%d, %d): factor %f out of range", i, x, y, f)
				}
			}
		}
	}
}
