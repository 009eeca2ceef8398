// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docmath/pkg/types"
)

// writeDocx writes a minimal DOCX container holding documentXML as
// word/document.xml and returns its path.
func writeDocx(t *testing.T, documentXML string) string {
	t.Helper()

	buf := new(bytes.Buffer)
	w := zip.NewWriter(buf)

	contentTypes, err := w.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = contentTypes.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="xml" ContentType="application/xml"/>
</Types>`))
	require.NoError(t, err)

	if documentXML != "" {
		doc, err := w.Create("word/document.xml")
		require.NoError(t, err)
		_, err = doc.Write([]byte(documentXML))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	path := filepath.Join(t.TempDir(), "test.docx")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// wrapBody embeds inner in a document root with the usual namespace
// declarations.
func wrapBody(inner string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:m="http://schemas.openxmlformats.org/officeDocument/2006/math"><w:body>` +
		inner + `</w:body></w:document>`
}

func TestExtract_CleanedMath(t *testing.T) {
	path := writeDocx(t, wrapBody(
		`<w:p><m:oMath><m:r><m:t>E=mc^2</m:t></m:r></m:oMath></w:p>`+
			`<w:p><m:oMath><m:r><m:t>a+b=c</m:t></m:r></m:oMath></w:p>`))

	result := New(Options{}).Extract(path)

	require.Equal(t, 2, result.Count())
	assert.Equal(t, types.FormClean, result.Form)
	assert.Equal(t, path, result.Source)

	assert.Equal(t, "E=mc^2", result.Equations[0].Content)
	assert.Equal(t, "a+b=c", result.Equations[1].Content)
	for _, eq := range result.Equations {
		assert.NotContains(t, eq.Content, "<")
		assert.NotContains(t, eq.Content, ">")
	}
	assert.Equal(t, 1, result.Equations[0].Index)
	assert.Equal(t, 2, result.Equations[1].Index)
}

func TestExtract_NoEquations(t *testing.T) {
	path := writeDocx(t, wrapBody(`<w:p><w:r><w:t>plain prose</w:t></w:r></w:p>`))

	result := New(Options{}).Extract(path)

	assert.Empty(t, result.Equations)
}

func TestExtract_RawMode(t *testing.T) {
	const math = `<m:oMath><m:r><m:t>E=mc^2</m:t></m:r></m:oMath>`
	path := writeDocx(t, wrapBody(`<w:p>`+math+`</w:p>`))

	result := New(Options{Raw: true}).Extract(path)

	require.Equal(t, 1, result.Count())
	assert.Equal(t, types.FormRaw, result.Form)
	assert.Equal(t, math, result.Equations[0].Content)
}

func TestExtract_DuplicateDiscovery(t *testing.T) {
	// An oMath in the word-processing namespace is reachable under both
	// probes of that namespace; the result must still hold one record.
	path := writeDocx(t, wrapBody(
		`<w:p><w:oMath><w:r><w:t>x=y</w:t></w:r></w:oMath></w:p>`))

	result := New(Options{}).Extract(path)

	require.Equal(t, 1, result.Count())
	assert.Equal(t, "x=y", result.Equations[0].Content)
}

func TestExtract_ObjectMarker(t *testing.T) {
	path := writeDocx(t, wrapBody(
		`<w:p><w:object><w:t>Equation area formula</w:t></w:object></w:p>`+
			`<w:p><w:object><w:t>embedded spreadsheet</w:t></w:object></w:p>`))

	result := New(Options{}).Extract(path)

	require.Equal(t, 1, result.Count())
	assert.Equal(t, "Equation area formula", result.Equations[0].Content)
}

func TestExtract_ObjectMarkerInAttribute(t *testing.T) {
	// The marker sits in the progId attribute, so it survives only in raw
	// mode: cleaning strips the tags and leaves nothing behind.
	doc := wrapBody(`<w:p><w:object><w:objectEmbed w:progId="Equation.3"/></w:object></w:p>`)

	raw := New(Options{Raw: true}).Extract(writeDocx(t, doc))
	require.Equal(t, 1, raw.Count())
	assert.Contains(t, raw.Equations[0].Content, "Equation.3")

	cleaned := New(Options{}).Extract(writeDocx(t, doc))
	assert.Empty(t, cleaned.Equations)
}

func TestExtract_CorruptArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

	var log bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&log, nil))

	result := New(Options{Logger: logger}).Extract(path)

	assert.Empty(t, result.Equations)
	assert.Contains(t, log.String(), "extraction failed")
}

func TestExtract_MissingDocumentEntry(t *testing.T) {
	path := writeDocx(t, "")

	var log bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&log, &slog.HandlerOptions{Level: slog.LevelDebug}))

	result := New(Options{Logger: logger}).Extract(path)

	assert.Empty(t, result.Equations)
	assert.NotContains(t, log.String(), "extraction failed")
}

func TestExtract_MalformedDocumentXML(t *testing.T) {
	path := writeDocx(t, `<w:document><unclosed`)

	var log bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&log, nil))

	result := New(Options{Logger: logger}).Extract(path)

	assert.Empty(t, result.Equations)
	assert.Contains(t, log.String(), "extraction failed")
}
