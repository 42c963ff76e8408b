package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/Xunop/book-faker/internal/model"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func sampleBooks() []*model.Book {
	return []*model.Book{
		{
			Index:         1,
			ISBN:          "9780306406157",
			Title:         "Rustic Steel Chair",
			Authors:       []string{"Ada Lovelace", "Alan Turing"},
			Publisher:     "Acme & Sons",
			Likes:         3,
			CoverImageURL: "https://placehold.co/400x600/1abc9c/ffffff?text=Rustic%20Steel%20Chair",
			Reviews: []model.Review{
				{ReviewerName: "Grace Hopper", ReviewText: "Lorem <ipsum>."},
			},
		},
		{
			Index:         2,
			ISBN:          "9781861972712",
			Title:         `Quoted, "Title"`,
			Authors:       []string{"Edsger Dijkstra"},
			Publisher:     "Initech",
			CoverImageURL: "https://placehold.co/400x600/e74c3c/ffffff?text=Quoted%2C%20%22Title%22",
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"csv": FormatCSV, " EPUB ": FormatEPUB, "Json": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}

	if _, err := ParseFormat("pdf"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Expected ErrUnknownFormat, got %v", err)
	}
}

func TestFileNameAndTitle(t *testing.T) {
	req := model.GenerationRequest{Locale: "de", Seed: 42, Page: 2}
	if got := FileName(req, 3, FormatCSV); got != "books-de-42-p2-3.csv" {
		t.Fatalf("Unexpected file name %q", got)
	}
	if got := Title(req, 3); got != "Books de, seed 42, pages 2-4" {
		t.Fatalf("Unexpected title %q", got)
	}
	if got := Title(req, 1); got != "Books de, seed 42, page 2" {
		t.Fatalf("Unexpected title %q", got)
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := CSV(&buf, sampleBooks()); err != nil {
		t.Fatalf("CSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Exported CSV does not parse: %v", err)
	}

	want := [][]string{
		{"index", "isbn", "title", "authors", "publisher", "likes", "reviews", "cover"},
		{"1", "9780306406157", "Rustic Steel Chair", "Ada Lovelace; Alan Turing", "Acme & Sons", "3", "1",
			"https://placehold.co/400x600/1abc9c/ffffff?text=Rustic%20Steel%20Chair"},
		{"2", "9781861972712", `Quoted, "Title"`, "Edsger Dijkstra", "Initech", "0", "0",
			"https://placehold.co/400x600/e74c3c/ffffff?text=Quoted%2C%20%22Title%22"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Fatalf("Unexpected CSV (-want +got):\n%s", diff)
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, "", "en", sampleBooks()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var got []*model.Book
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Exported JSON does not parse: %v", err)
	}
	if diff := cmp.Diff(sampleBooks(), got); diff != "" {
		t.Fatalf("Unexpected JSON (-want +got):\n%s", diff)
	}
}

type container struct {
	Rootfile struct {
		Fullpath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

func readZipFile(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("Open %s: %v", name, err)
			}
			defer rc.Close()
			data, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("Read %s: %v", name, err)
			}
			return data
		}
	}
	t.Fatalf("File not found: %s", name)
	return nil
}

func TestEPUB(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatEPUB, "Books en, seed 42, page 0", "en", sampleBooks()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Exported EPUB is not a zip: %v", err)
	}

	if mimetype := string(readZipFile(t, zr, "mimetype")); mimetype != "application/epub+zip" {
		t.Fatalf("Invalid mimetype: %s", mimetype)
	}

	var c container
	if err := xml.Unmarshal(readZipFile(t, zr, "META-INF/container.xml"), &c); err != nil {
		t.Fatalf("Invalid container.xml: %v", err)
	}
	opf := string(readZipFile(t, zr, c.Rootfile.Fullpath))
	if !strings.Contains(opf, "urn:uuid:") {
		t.Fatalf("Package document has no uuid identifier")
	}
	if !strings.Contains(opf, "Books en, seed 42, page 0") {
		t.Fatalf("Package document has no title")
	}

	sections := 0
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "book-0001.xhtml") || strings.HasSuffix(f.Name, "book-0002.xhtml") {
			sections++
		}
	}
	if sections != 2 {
		t.Fatalf("Expected 2 book sections, got %d", sections)
	}
}

func TestSectionBodyEscapes(t *testing.T) {
	body := sectionBody(sampleBooks()[0])
	if strings.Contains(body, "<ipsum>") {
		t.Fatalf("Review text was not escaped: %s", body)
	}
	if !strings.Contains(body, "Acme &amp; Sons") {
		t.Fatalf("Publisher was not escaped: %s", body)
	}
}
