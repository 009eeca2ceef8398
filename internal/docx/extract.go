// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx extracts Office Math Markup (oMath) equations and
// equation-bearing embedded objects from Word document containers.
package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/pdiddy/docmath/pkg/types"
)

// documentEntry is the archive entry holding the main document body.
const documentEntry = "word/document.xml"

const (
	nsWordMain     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsOfficeMath   = "http://schemas.openxmlformats.org/officeDocument/2006/math"
	nsMarkupCompat = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

// objectMarker is the substring that flags an embedded object as an
// equation (e.g. an "Equation.3" OLE progId).
const objectMarker = "Equation"

// probeNamespaces lists the namespace URIs probed for oMath elements, in
// order. Producers vary in how they qualify math markup, so the probe is
// deliberately broad; the word-processing namespace appears twice to keep
// recall parity with documents that declare it under an alias prefix.
// Duplicate matches are removed during post-processing.
var probeNamespaces = []string{
	nsWordMain,
	nsOfficeMath,
	nsMarkupCompat,
	nsWordMain,
}

// Options configure an Extractor.
type Options struct {
	// Raw returns equations as verbatim serialized XML instead of
	// cleaned plain text.
	Raw bool

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Extractor scans Word document containers for equations. Each call to
// Extract is independent; an Extractor holds no per-document state.
type Extractor struct {
	raw    bool
	logger *slog.Logger
}

// New creates an Extractor.
func New(opts Options) *Extractor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{raw: opts.Raw, logger: logger}
}

// Extract scans the document at path and returns the equations found.
// It never fails: container and parse errors are logged and degrade to
// an empty result. Blank records are dropped and duplicates removed,
// preserving first-occurrence order.
func (e *Extractor) Extract(path string) types.Extraction {
	e.logger.Info("processing document", "path", path)

	form := types.FormClean
	if e.raw {
		form = types.FormRaw
	}
	result := types.Extraction{Source: path, Form: form}

	records, err := e.scan(path)
	if err != nil {
		e.logger.Error("extraction failed", "path", path, "error", err)
		return result
	}

	for i, content := range Dedupe(records) {
		result.Equations = append(result.Equations, types.Equation{
			Index:   i + 1,
			Content: content,
		})
	}

	e.logger.Info("extraction complete", "path", path, "equations", result.Count())
	return result
}

// scan opens the container, parses the document body, and collects
// candidate records in discovery order, duplicates included.
func (e *Extractor) scan(path string) ([]string, error) {
	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer archive.Close()

	data, ok, err := readEntry(&archive.Reader, documentEntry)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Not an error: a container without a document body simply
		// holds no equations.
		e.logger.Debug("entry not present in archive", "entry", documentEntry)
		return nil, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", documentEntry, err)
	}

	var records []string
	records = append(records, e.mathRecords(doc)...)
	records = append(records, e.objectRecords(doc)...)
	return records, nil
}

// mathRecords probes each candidate namespace for oMath elements and
// serializes every match. Per-namespace faults are isolated: a probe that
// yields nothing simply contributes no records.
func (e *Extractor) mathRecords(doc *etree.Document) []string {
	var records []string
	for _, ns := range probeNamespaces {
		matches := findElements(&doc.Element, "oMath", ns)
		if len(matches) == 0 {
			continue
		}
		e.logger.Debug("found math elements", "namespace", ns, "count", len(matches))
		for _, el := range matches {
			if r := e.record(outerXML(el)); r != "" {
				records = append(records, r)
			}
		}
	}
	return records
}

// objectRecords collects embedded objects whose serialized form contains
// the equation marker. The containment check is a deliberate heuristic:
// equation OLE objects carry the marker in their progId even when the
// document has no native math markup.
func (e *Extractor) objectRecords(doc *etree.Document) []string {
	var records []string
	for _, el := range findElements(&doc.Element, "object", nsWordMain) {
		raw := outerXML(el)
		if !containsMarker(raw) {
			continue
		}
		if r := e.record(raw); r != "" {
			records = append(records, r)
		}
	}
	if len(records) > 0 {
		e.logger.Debug("found equation objects", "count", len(records))
	}
	return records
}

// record applies the configured output form to a serialized candidate.
func (e *Extractor) record(raw string) string {
	if e.raw {
		return raw
	}
	return Clean(raw)
}

// readEntry returns the contents of the named archive entry, reporting
// whether the entry exists.
func readEntry(r *zip.Reader, name string) ([]byte, bool, error) {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, true, fmt.Errorf("opening %s: %w", name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, true, fmt.Errorf("reading %s: %w", name, err)
		}
		return data, true, nil
	}
	return nil, false, nil
}

// findElements returns every descendant of root with the given tag whose
// resolved namespace URI matches ns, in document order.
func findElements(root *etree.Element, tag, ns string) []*etree.Element {
	var matches []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		if el.Tag == tag && el.NamespaceURI() == ns {
			matches = append(matches, el)
		}
		for _, c := range el.ChildElements() {
			walk(c)
		}
	}
	walk(root)
	return matches
}

// outerXML serializes an element and its subtree back to markup.
func outerXML(el *etree.Element) string {
	doc := etree.NewDocument()
	doc.AddChild(el.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
