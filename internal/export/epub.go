package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/Xunop/book-faker/internal/model"
	"github.com/Xunop/book-faker/internal/util"
	"github.com/go-shiori/go-epub"
	"github.com/pkg/errors"
)

const catalogAuthor = "book-faker"

// EPUB writes a catalog with one section per book.
func EPUB(w io.Writer, title, locale string, books []*model.Book) error {
	e, err := epub.NewEpub(title)
	if err != nil {
		return errors.Wrap(err, "unable to create epub")
	}
	e.SetAuthor(catalogAuthor)
	e.SetLang(locale)
	e.SetIdentifier("urn:uuid:" + util.GenUUID())
	e.SetDescription(fmt.Sprintf("%d generated books", len(books)))

	for _, b := range books {
		name := fmt.Sprintf("book-%04d.xhtml", b.Index)
		if _, err := e.AddSection(sectionBody(b), b.Title, name, ""); err != nil {
			return errors.Wrapf(err, "unable to add book %d", b.Index)
		}
	}

	if _, err := e.WriteTo(w); err != nil {
		return errors.Wrap(err, "unable to write epub")
	}
	return nil
}

func sectionBody(b *model.Book) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<h1>%s</h1>\n", html.EscapeString(b.Title))
	fmt.Fprintf(&sb, "<p><strong>%s</strong></p>\n", html.EscapeString(b.AuthorLine()))
	sb.WriteString("<dl>\n")
	fmt.Fprintf(&sb, "<dt>#</dt><dd>%d</dd>\n", b.Index)
	fmt.Fprintf(&sb, "<dt>ISBN</dt><dd>%s</dd>\n", html.EscapeString(b.ISBN))
	fmt.Fprintf(&sb, "<dt>Publisher</dt><dd>%s</dd>\n", html.EscapeString(b.Publisher))
	fmt.Fprintf(&sb, "<dt>Likes</dt><dd>%d</dd>\n", b.Likes)
	sb.WriteString("</dl>\n")

	if len(b.Reviews) > 0 {
		sb.WriteString("<h2>Reviews</h2>\n")
		for _, r := range b.Reviews {
			fmt.Fprintf(&sb, "<blockquote><p>%s</p><footer>%s</footer></blockquote>\n",
				html.EscapeString(r.ReviewText), html.EscapeString(r.ReviewerName))
		}
	}
	return sb.String()
}
