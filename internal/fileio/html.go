package fileio

import (
	"io"

	"table2excel/internal/table"
)

func readHTML(r io.Reader, selector string) ([]*table.Table, error) {
	return table.ReadHTML(decodeUTF8(r), selector)
}
