package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"token-icon-service/internal/cache"
	"token-icon-service/internal/imaging"
	"token-icon-service/internal/models"
	"token-icon-service/internal/services"
)

// RequestRecorder logs served requests for popularity tracking.
// Nil-safe at the handler level: the service runs fine without it.
type RequestRecorder interface {
	Save(symbol, size string) error
}

type IconHandler struct {
	icons    *services.IconService
	cache    cache.Store
	recorder RequestRecorder
}

func NewIconHandler(icons *services.IconService, store cache.Store, recorder RequestRecorder) *IconHandler {
	return &IconHandler{icons: icons, cache: store, recorder: recorder}
}

type queryKind int

const (
	queryInvalid queryKind = iota
	queryImage
	queryClearCache
)

type iconQuery struct {
	kind   queryKind
	symbol string
	size   string
}

// parseQuery decodes the raw query into one of three shapes.
// clearCache short-circuits only on a true value; clearCache=false
// falls through to normal validation.
func parseQuery(values url.Values) iconQuery {
	if raw := values.Get("clearCache"); raw != "" {
		if clear, err := strconv.ParseBool(raw); err == nil && clear {
			return iconQuery{kind: queryClearCache}
		}
	}

	symbol := strings.TrimSpace(values.Get("symbol"))
	size := values.Get("size")
	if symbol == "" || !models.ValidSize(size) {
		return iconQuery{kind: queryInvalid}
	}

	return iconQuery{kind: queryImage, symbol: symbol, size: size}
}

func (h *IconHandler) GetIcon(w http.ResponseWriter, r *http.Request) {
	q := parseQuery(r.URL.Query())

	switch q.kind {
	case queryClearCache:
		if err := h.cache.FlushAll(r.Context()); err != nil {
			log.Printf("Cache flush failed: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Cache cleared"})
		return

	case queryInvalid:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid query"})
		return
	}

	if h.recorder != nil {
		go func(symbol, size string) {
			if err := h.recorder.Save(symbol, size); err != nil {
				log.Printf("Request log write failed: %v", err)
			}
		}(q.symbol, q.size)
	}

	data, err := h.icons.ResolveImage(q.symbol, q.size)
	if err != nil {
		log.Printf("Icon resolution failed (%s, %s): %v", q.symbol, q.size, err)
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "image/"+imaging.DetectFormat(data))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func statusFor(err error) int {
	if errors.Is(err, services.ErrUpstreamUnavailable) || errors.Is(err, services.ErrUpstreamEmpty) {
		return http.StatusInternalServerError
	}
	return http.StatusNotFound
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
