package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/Xunop/book-faker/internal/cache"
	"github.com/Xunop/book-faker/internal/config"
	"github.com/Xunop/book-faker/internal/export"
	"github.com/Xunop/book-faker/internal/generator"
	"github.com/Xunop/book-faker/internal/http/request"
	"github.com/Xunop/book-faker/internal/http/response"
	"github.com/Xunop/book-faker/internal/log"
	"github.com/Xunop/book-faker/internal/model"
	"github.com/Xunop/book-faker/internal/validator"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseGenerationRequest(r)
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}

	body, err := h.pageJSON(r.Context(), req)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OKRaw(w, r, body)
}

// pageJSON returns the encoded page, from the cache when possible.
func (h *Handler) pageJSON(ctx context.Context, req model.GenerationRequest) ([]byte, error) {
	key := cache.Key(req)
	if body, ok := h.cache.Get(ctx, key); ok {
		log.Debug("Page cache hit", zap.String("key", key))
		return body, nil
	}

	books, err := h.gen.Generate(req)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to generate page %s", req.Key())
	}
	body, err := json.Marshal(books)
	if err != nil {
		return nil, errors.Wrap(err, "unable to encode page")
	}

	h.cache.Set(ctx, key, body)
	return body, nil
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	index := int64(request.RouteIntParam(r, "index"))
	if index < 1 {
		response.NotFound(w, r)
		return
	}

	req, err := h.parseGenerationRequest(r)
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}
	req.Page = generator.PageOf(index)

	books, err := h.gen.Generate(req)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	offset := index - generator.StartIndex(req.Page)
	if offset < 0 || offset >= int64(len(books)) {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, books[offset])
}

func (h *Handler) exportBooks(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseGenerationRequest(r)
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}

	format, err := export.ParseFormat(request.QueryStringParam(r, "format", string(export.FormatCSV)))
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if !config.CheckExportFormat(string(format)) {
		response.BadRequest(w, r, errors.Errorf("export format %s is disabled", format))
		return
	}

	pages, err := request.QueryIntParam(r, "pages", 1)
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if err := validator.ValidateExportRequest(pages, h.opts.MaxExportPages); err != nil {
		response.BadRequest(w, r, err)
		return
	}

	books, err := h.pool.GeneratePages(r.Context(), req, req.Page, pages)
	if err != nil {
		response.ServerError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, export.Title(req, pages), req.Locale, books); err != nil {
		response.ServerError(w, r, err)
		return
	}

	log.Info("Books exported",
		zap.String("format", string(format)),
		zap.String("request", req.Key()),
		zap.Int("pages", pages),
		zap.Int("books", len(books)))

	response.Attachment(w, r, export.FileName(req, pages, format), format.ContentType(), buf.Bytes())
}
