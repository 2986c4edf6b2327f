package report

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/kk-code-lab/reportview/internal/markdown"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// MaxReportBytes bounds what Load and Read accept. Reports carry their images
// inline, so this is generous.
const MaxReportBytes = 64 << 20

const sniffSize = 4096

var (
	ErrTooLarge = errors.New("report exceeds size limit")
	ErrBinary   = errors.New("report is not text")
)

// Report is a loaded markdown report. Text is kept exactly as read (after
// encoding normalization) because export writes it back out unchanged.
type Report struct {
	Name  string
	Title string
	Text  string
}

// Load reads a report from disk.
func Load(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open report")
	}
	defer func() {
		_ = f.Close()
	}()
	return Read(f, path)
}

// Read reads a report from r. name is used for the title; pass "" or "-" for
// standard input, in which case the first level-1 heading is used instead.
func Read(r io.Reader, name string) (*Report, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxReportBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read report")
	}
	if len(content) > MaxReportBytes {
		return nil, ErrTooLarge
	}

	text, err := NormalizeText(content)
	if err != nil {
		return nil, err
	}

	rep := &Report{Text: text}
	if name != "" && name != "-" {
		rep.Name = name
		rep.Title = titleFromPath(name)
	} else {
		rep.Title = TitleFromText(text)
	}
	return rep, nil
}

// Document parses the report text.
func (r *Report) Document() markdown.Document {
	return markdown.Parse(r.Text)
}

// Lines splits the report text the same way the parser does; the viewer uses
// it for source mode.
func (r *Report) Lines() []string {
	return markdown.SplitLines(r.Text)
}

// NormalizeText converts BOM-marked UTF-8 and UTF-16 content into a UTF-8
// string and rejects content that does not look like text.
func NormalizeText(content []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch detectEncoding(content) {
	case encodingUTF8BOM:
		text = string(content[3:])
	case encodingUTF16LE:
		text, err = decodeUTF16(content, unicode.LittleEndian)
	case encodingUTF16BE:
		text, err = decodeUTF16(content, unicode.BigEndian)
	default:
		sample := content
		if len(sample) > sniffSize {
			sample = sample[:sniffSize]
		}
		if bytes.IndexByte(sample, 0) >= 0 {
			return "", ErrBinary
		}
		text = string(content)
	}
	if err != nil {
		return "", errors.Wrap(err, "decode utf-16 report")
	}
	if !utf8.ValidString(text) {
		return "", ErrBinary
	}
	return text, nil
}

// TitleFromText returns the text of the first level-1 heading, or "report".
func TitleFromText(text string) string {
	for _, block := range markdown.Parse(text).Blocks {
		if h, ok := block.(markdown.Heading); ok && h.Level == 1 {
			if title := strings.TrimSpace(markdown.SpanText(h.Content)); title != "" {
				return title
			}
		}
	}
	return "report"
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))
	title = strings.TrimSuffix(title, "_report")
	if title == "" {
		return "report"
	}
	return title
}

type textEncoding int

const (
	encodingUnknown textEncoding = iota
	encodingUTF8BOM
	encodingUTF16LE
	encodingUTF16BE
)

func detectEncoding(content []byte) textEncoding {
	switch {
	case bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}):
		return encodingUTF8BOM
	case bytes.HasPrefix(content, []byte{0xFF, 0xFE}):
		return encodingUTF16LE
	case bytes.HasPrefix(content, []byte{0xFE, 0xFF}):
		return encodingUTF16BE
	default:
		return encodingUnknown
	}
}

func decodeUTF16(content []byte, endian unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder()
	out, _, err := transform.Bytes(decoder, content)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
