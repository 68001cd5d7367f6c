package xlsx

import (
	"io"
	"path/filepath"
	"strings"
)

// DefaultExt is used when Save gets no extension.
const DefaultExt = "xlsx"

// Saver hands a finished workbook to its destination.
type Saver interface {
	Save(wb *Workbook, fileName, ext string) error
}

// FileName joins name and extension the way downloads are named.
func FileName(name, ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = DefaultExt
	}
	if name == "" {
		name = "export"
	}
	return name + "." + ext
}

// FileSaver writes <Dir>/<fileName>.<ext>.
type FileSaver struct {
	Dir string
}

func (s FileSaver) Save(wb *Workbook, fileName, ext string) error {
	return wb.File.SaveAs(filepath.Join(s.Dir, FileName(fileName, ext)))
}

// WriterSaver streams the workbook into W; the name is only recorded.
type WriterSaver struct {
	W    io.Writer
	Name string
}

func (s *WriterSaver) Save(wb *Workbook, fileName, ext string) error {
	s.Name = FileName(fileName, ext)
	_, err := wb.WriteTo(s.W)
	return err
}
