package middleware

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lumenfide/lumen/internal/cache"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyRecorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *bodyRecorder) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// CacheResponses serves anonymous GET responses from store. The key is the path
// plus the sorted query, so equal requests share an entry. Only 200s are stored
// and store failures fall through to the handler.
func CacheResponses(store cache.Store, prefix string, ttl time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || store == nil || ttl <= 0 {
				next(w, r)
				return
			}

			key := prefix + ":" + r.URL.Path + "?" + r.URL.Query().Encode()

			var cached cachedResponse
			err := store.Get(r.Context(), key, &cached)
			if err == nil {
				w.Header().Set("Content-Type", cached.ContentType)
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(cached.Status)
				w.Write(cached.Body)
				return
			}
			if !errors.Is(err, cache.ErrMiss) {
				slog.Warn("cache get failed", "error", err, "key", key)
			}

			w.Header().Set("X-Cache", "MISS")
			rec := &bodyRecorder{ResponseWriter: w}
			next(rec, r)

			if rec.status != http.StatusOK {
				return
			}

			err = store.Set(r.Context(), key, cachedResponse{
				Status:      rec.status,
				ContentType: w.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			}, ttl)
			if err != nil {
				slog.Warn("cache set failed", "error", err, "key", key)
			}
		}
	}
}
