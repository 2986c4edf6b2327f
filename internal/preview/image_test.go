package preview

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(y), A: 255})
		}
	}
	return img
}

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(w, h)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestInspectImagePNG(t *testing.T) {
	info := InspectImage(pngDataURI(t, 640, 480))
	if info.Err != nil {
		t.Fatalf("unexpected error: %v", info.Err)
	}
	if !info.Embedded || info.Format != "png" || info.Width != 640 || info.Height != 480 {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.MediaType != "image/png" {
		t.Fatalf("unexpected media type %q", info.MediaType)
	}
	if !strings.HasPrefix(info.Summary(), "png 640×480, ") {
		t.Fatalf("unexpected summary %q", info.Summary())
	}
}

func TestInspectImageBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, testImage(3, 7)); err != nil {
		t.Fatalf("encode bmp: %v", err)
	}
	uri := "data:image/bmp;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	info := InspectImage(uri)
	if info.Format != "bmp" || info.Width != 3 || info.Height != 7 {
		t.Fatalf("unexpected info %+v (err %v)", info, info.Err)
	}
	if info.Size != buf.Len() {
		t.Fatalf("expected size %d, got %d", buf.Len(), info.Size)
	}
}

func TestInspectImageUndecodablePayload(t *testing.T) {
	info := InspectImage("data:image/png;base64,AAAA")
	if info.Err == nil {
		t.Fatalf("expected decode error")
	}
	if info.Size != 3 {
		t.Fatalf("expected 3 decoded bytes, got %d", info.Size)
	}
	if got := info.Summary(); got != "(embedded image/png, 3 B, not decodable)" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestInspectImageMalformed(t *testing.T) {
	info := InspectImage("data:image/png;base64")
	if info.Err == nil || !info.Embedded {
		t.Fatalf("expected malformed data uri error, got %+v", info)
	}
	if got := info.Summary(); got != "(invalid data URI)" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestInspectImageExternalURL(t *testing.T) {
	info := InspectImage("figures/plot.png")
	if info.Embedded || info.Summary() != "" {
		t.Fatalf("expected external url to be left alone, got %+v", info)
	}
}

func TestDecodedBase64Len(t *testing.T) {
	tests := map[string]int{
		"":     0,
		"AAAA": 3,
		"AAA=": 2,
		"AA==": 1,
	}
	for in, want := range tests {
		if got := decodedBase64Len(in); got != want {
			t.Fatalf("decodedBase64Len(%q)=%d want %d", in, got, want)
		}
	}
}
