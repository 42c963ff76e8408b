package export // import "github.com/Xunop/book-faker/internal/export"

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Xunop/book-faker/internal/model"
	"github.com/pkg/errors"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatEPUB Format = "epub"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV, FormatEPUB:
		return f, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatEPUB:
		return "application/epub+zip"
	default:
		return "application/json"
	}
}

// FileName names an export of pages consecutive pages of req.
func FileName(req model.GenerationRequest, pages int, f Format) string {
	return fmt.Sprintf("books-%s-%d-p%d-%d.%s", req.Locale, req.Seed, req.Page, pages, f)
}

// Title is the human readable name of an export.
func Title(req model.GenerationRequest, pages int) string {
	last := req.Page + pages - 1
	if last == req.Page {
		return fmt.Sprintf("Books %s, seed %d, page %d", req.Locale, req.Seed, req.Page)
	}
	return fmt.Sprintf("Books %s, seed %d, pages %d-%d", req.Locale, req.Seed, req.Page, last)
}

// Write encodes books in format f.
func Write(w io.Writer, f Format, title, locale string, books []*model.Book) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(books), "unable to encode books")
	case FormatCSV:
		return CSV(w, books)
	case FormatEPUB:
		return EPUB(w, title, locale, books)
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", f)
	}
}
