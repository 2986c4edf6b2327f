package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestLoadKeepsTextVerbatim(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Tensile Test.md")
	content := "# Tensile\r\n\r\n**n** = 3\n```\nunterminated"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	rep, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, content, rep.Text)
	require.Equal(t, "Tensile Test", rep.Title)
	require.Equal(t, path, rep.Name)
	require.Equal(t, 4, rep.Document().Len())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestReadStdinUsesFirstHeading(t *testing.T) {
	rep, err := Read(strings.NewReader("intro\n## Sub\n# Strength **Analysis**\n"), "-")
	require.NoError(t, err)
	require.Equal(t, "Strength Analysis", rep.Title)
	require.Empty(t, rep.Name)
}

func TestReadWithoutHeadingFallsBack(t *testing.T) {
	rep, err := Read(strings.NewReader("just text"), "")
	require.NoError(t, err)
	require.Equal(t, "report", rep.Title)
}

func TestReadRejectsBinary(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte{'P', 'K', 0x03, 0x04, 0x00, 0x00}), "x.md")
	require.ErrorIs(t, err, ErrBinary)

	_, err = Read(bytes.NewReader([]byte{0xff, 0xfe, 0xfd, 'a'}[2:]), "x.md")
	require.ErrorIs(t, err, ErrBinary)
}

func TestReadRejectsOversizedInput(t *testing.T) {
	big := bytes.Repeat([]byte("a"), MaxReportBytes+1)
	_, err := Read(bytes.NewReader(big), "big.md")
	require.ErrorIs(t, err, ErrTooLarge)
}

func TestNormalizeTextDecodesBOMs(t *testing.T) {
	want := "# 결과\n- ok"

	text, err := NormalizeText(append([]byte{0xEF, 0xBB, 0xBF}, want...))
	require.NoError(t, err)
	require.Equal(t, want, text)

	for _, endian := range []unicode.Endianness{unicode.LittleEndian, unicode.BigEndian} {
		encoded, err := unicode.UTF16(endian, unicode.UseBOM).NewEncoder().Bytes([]byte(want))
		require.NoError(t, err)
		text, err := NormalizeText(encoded)
		require.NoError(t, err)
		require.Equal(t, want, text)
	}
}

func TestLinesMatchParser(t *testing.T) {
	rep := &Report{Text: "a\r\nb\n"}
	require.Equal(t, []string{"a", "b"}, rep.Lines())
}

func TestTitleFromPath(t *testing.T) {
	require.Equal(t, "Hardness", titleFromPath("/tmp/Hardness_report.md"))
	require.Equal(t, "notes", titleFromPath("notes"))
	require.Equal(t, "report", titleFromPath(".md"))
}
