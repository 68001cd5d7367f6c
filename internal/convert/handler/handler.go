package handler

import (
	"errors"
	"math"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"table2excel/internal/config"
	"table2excel/internal/convert"
	"table2excel/internal/fileio"
	"table2excel/internal/plugins"
	"table2excel/internal/table"
	"table2excel/internal/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Convert returns the handler behind POST /convert. Input is either a
// multipart upload in field "file" or a raw HTML (or CSV) body; the result
// is streamed back as an xlsx attachment.
func Convert(cfg config.Config, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		log := zerolog.Ctx(r.Context())
		if log.GetLevel() == zerolog.Disabled {
			log = &logger
		}
		defer r.Body.Close()

		tables, source, err := readInput(r, cfg)
		if err != nil {
			status := http.StatusBadRequest
			var mbe *http.MaxBytesError
			switch {
			case errors.As(err, &mbe):
				status = http.StatusRequestEntityTooLarge
			case errors.Is(err, fileio.ErrUnsupported):
				status = http.StatusUnsupportedMediaType
			}
			log.Warn().Err(err).Int("status", status).Msg("read input")
			http.Error(w, "failed to read input: "+err.Error(), status)
			return
		}

		opts := convert.Options{
			WidthRatio:           toFloat(r.FormValue("width_ratio"), cfg.WidthRatio),
			EnableDefaultPlugins: boolPtr(toBool(r.FormValue("default_plugins"), true)),
			Logger:               log,
		}
		if toBool(r.FormValue("numbers"), false) {
			opts.Plugins = append(opts.Plugins, plugins.Numbers{})
		}
		name := outputName(r.FormValue("filename"), source)
		saver := &xlsx.WriterSaver{W: w}
		opts.Saver = saver

		conv := convert.New(tables, opts)
		defer conv.Close()

		// build before any byte goes out so failures can still change the status
		if _, err := conv.ToExcel(); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, convert.ErrEmptySelection) {
				status = http.StatusUnprocessableEntity
			}
			log.Error().Err(err).Int("status", status).Msg("convert")
			http.Error(w, err.Error(), status)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
			"filename": xlsx.FileName(name, xlsx.DefaultExt),
		}))
		w.Header().Set("Cache-Control", "no-store")
		if err := conv.Export(name, xlsx.DefaultExt); err != nil {
			log.Error().Err(err).Msg("write xlsx")
			return
		}

		log.Info().
			Str("source", source).
			Int("tables", len(tables)).
			Str("file", saver.Name).
			Dur("elapsed", time.Since(start)).
			Msg("convert done")
	}
}

// readInput returns the tables of the request and the name of their source.
func readInput(r *http.Request, cfg config.Config) ([]*table.Table, string, error) {
	selector := r.URL.Query().Get("selector")
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	if ct == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return nil, "", err
		}
		if v := r.FormValue("selector"); v != "" {
			selector = v
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			return nil, "", err
		}
		defer file.Close()
		tables, err := fileio.ReadTables(file, header.Filename, orDefault(selector, cfg.DefaultSelector))
		return tables, header.Filename, err
	}

	name := "body.html"
	if ct == "text/csv" {
		name = "body.csv"
	}
	tables, err := fileio.ReadTables(r.Body, name, orDefault(selector, cfg.DefaultSelector))
	return tables, name, err
}

// outputName prefers the explicit name, then the upload's base name.
func outputName(requested, source string) string {
	name := strings.TrimSpace(requested)
	if name == "" && !strings.HasPrefix(source, "body.") {
		name = filepath.Base(source)
	}
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', 0:
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." {
		return "export"
	}
	return name
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func boolPtr(b bool) *bool { return &b }

func toBool(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func toFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return def
	}
	return f
}
