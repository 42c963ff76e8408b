package v1

import (
	"net/http"

	"github.com/Xunop/book-faker/internal/http/response"
	"github.com/Xunop/book-faker/internal/textsource"
	"github.com/Xunop/book-faker/internal/util"
)

func (h *Handler) listLocales(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, textsource.SupportedLocales())
}

type seedResponse struct {
	Seed int64 `json:"seed"`
}

func (h *Handler) randomSeed(w http.ResponseWriter, r *http.Request) {
	seed, err := util.RandomSeed()
	if err != nil {
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, seedResponse{Seed: seed})
}
