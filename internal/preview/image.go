package preview

import (
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageInfo describes the image behind an Image block's URL. Only data URIs
// are inspected; other URLs are left for the terminal user to open.
type ImageInfo struct {
	Embedded  bool
	MediaType string
	Format    string
	Width     int
	Height    int
	Size      int
	Err       error
}

// InspectImage decodes just enough of a data URI to report its format and
// dimensions. The payload is streamed, so large inline plots are not fully
// decoded.
func InspectImage(rawURL string) ImageInfo {
	if !strings.HasPrefix(rawURL, "data:") {
		return ImageInfo{}
	}
	info := ImageInfo{Embedded: true}

	comma := strings.IndexByte(rawURL, ',')
	if comma < 0 {
		info.Err = errors.New("data uri has no payload separator")
		return info
	}
	meta := rawURL[len("data:"):comma]
	payload := rawURL[comma+1:]

	isBase64 := strings.HasSuffix(meta, ";base64")
	meta = strings.TrimSuffix(meta, ";base64")
	if i := strings.IndexByte(meta, ';'); i >= 0 {
		meta = meta[:i]
	}
	info.MediaType = meta

	var src io.Reader
	if isBase64 {
		payload = strings.TrimSpace(payload)
		info.Size = decodedBase64Len(payload)
		src = base64.NewDecoder(base64.StdEncoding, strings.NewReader(payload))
	} else {
		unescaped, err := url.PathUnescape(payload)
		if err != nil {
			info.Err = errors.Wrap(err, "unescape data uri")
			return info
		}
		info.Size = len(unescaped)
		src = strings.NewReader(unescaped)
	}

	cfg, format, err := image.DecodeConfig(src)
	if err != nil {
		info.Err = err
		return info
	}
	info.Format = format
	info.Width = cfg.Width
	info.Height = cfg.Height
	return info
}

// Summary is a one-line description for the preview.
func (i ImageInfo) Summary() string {
	if !i.Embedded {
		return ""
	}
	size := humanize.Bytes(uint64(i.Size))
	switch {
	case i.Format != "":
		return fmt.Sprintf("%s %d×%d, %s embedded", i.Format, i.Width, i.Height, size)
	case i.MediaType != "" && i.Size > 0:
		return fmt.Sprintf("(embedded %s, %s, not decodable)", i.MediaType, size)
	case i.Size > 0:
		return fmt.Sprintf("(embedded image, %s)", size)
	default:
		return "(invalid data URI)"
	}
}

func decodedBase64Len(payload string) int {
	n := len(payload)
	padding := 0
	for padding < 2 && n-padding > 0 && payload[n-1-padding] == '=' {
		padding++
	}
	return n/4*3 - padding
}
