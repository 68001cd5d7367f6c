package fileio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"

	"table2excel/internal/table"
)

// ErrUnsupported is returned for file types there is no reader for.
var ErrUnsupported = errors.New("unsupported file type")

const peekSize = 4096

// ReadTables picks a reader by extension and returns the source tables of
// the file. selector only applies to HTML documents; spreadsheets yield one
// table per sheet.
func ReadTables(r io.Reader, filename, selector string) ([]*table.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".html", ".htm", ".xhtml":
		return readHTML(r, selector)
	case ".xlsx", ".xlsm":
		return readXLSX(r)
	case ".xls":
		return readXLS(r)
	case ".csv", ".tsv":
		return readCSV(r, ext == ".tsv")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filename)
	}
}

// decodeUTF8 wraps r so that it yields UTF-8. Input that already is valid
// UTF-8 passes through (minus a BOM); anything else goes through charset
// detection on the first bytes.
func decodeUTF8(r io.Reader) io.Reader {
	br := bufio.NewReaderSize(r, peekSize)
	peek, _ := br.Peek(peekSize)
	if bytes.HasPrefix(peek, []byte("\xef\xbb\xbf")) {
		_, _ = br.Discard(3)
		return br
	}
	if len(peek) == 0 || looksUTF8(peek, len(peek) == peekSize) {
		return br
	}

	det, err := chardet.NewTextDetector().DetectBest(peek)
	if err != nil || det == nil {
		return br
	}
	enc, err := htmlindex.Get(strings.ToLower(det.Charset))
	if err != nil {
		return br
	}
	if name, _ := htmlindex.Name(enc); name == "utf-8" {
		return br
	}
	return transform.NewReader(br, enc.NewDecoder())
}

// looksUTF8 tolerates a rune cut off at the end of a truncated peek.
func looksUTF8(b []byte, truncated bool) bool {
	if utf8.Valid(b) {
		return true
	}
	if !truncated {
		return false
	}
	for i := 1; i < utf8.UTFMax && i < len(b); i++ {
		if utf8.Valid(b[:len(b)-i]) {
			return true
		}
	}
	return false
}

// normalizeCell trims a cell value; TrimSpace also covers NBSP.
func normalizeCell(s string) string {
	return strings.TrimSpace(s)
}
