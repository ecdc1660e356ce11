package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/albapepper/pokestory-guide/internal/api/respond"
	"github.com/albapepper/pokestory-guide/internal/cache"
	"github.com/albapepper/pokestory-guide/internal/imgsrc"
)

const maxImageCandidates = 8

// ImageResponse is the URL a client should display for a candidate list.
type ImageResponse struct {
	URL         string   `json:"url"`
	Placeholder bool     `json:"placeholder"`
	Candidates  []string `json:"candidates"`
}

// ResolveImage checks candidates in order and returns the first that loads,
// or the inline placeholder when none do.
// @Summary Resolve an image candidate list
// @Description Tries each src in order (HEAD, then ranged GET) and returns the first that serves an image. Falls back to an inline SVG placeholder.
// @Tags images
// @Produce json
// @Param src query []string false "Candidate URLs, in preference order" collectionFormat(multi)
// @Success 200 {object} ImageResponse
// @Failure 400 {object} respond.ErrorResponse
// @Router /images/resolve [get]
func (h *Handler) ResolveImage(w http.ResponseWriter, r *http.Request) {
	srcs := r.URL.Query()["src"]
	if len(srcs) > maxImageCandidates {
		respond.WriteError(w, http.StatusBadRequest, respond.CodeInvalidParam, "too many src candidates")
		return
	}

	res := imgsrc.New(srcs...)
	key := "image:" + strings.Join(res.Candidates(), "\x00")
	h.serveCached(w, r, key, cache.TTLImage, "image", func(ctx context.Context) (any, error) {
		url, err := h.prober.Resolve(ctx, res)
		if err != nil {
			return nil, err
		}
		placeholder := url == imgsrc.Placeholder
		h.metrics.RecordImageResolution(placeholder)
		return ImageResponse{URL: url, Placeholder: placeholder, Candidates: res.Candidates()}, nil
	})
}
