package middleware

import (
	"bytes"
	"log"
	"net/http"
	"time"

	"yatube/internal/cache"
)

// cacheRecorder buffers a handler's output so it can be stored after the
// response is known to be cacheable.
type cacheRecorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *cacheRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *cacheRecorder) Write(p []byte) (int, error) {
	r.buf.Write(p)
	return r.ResponseWriter.Write(p)
}

// CachePage serves GET responses from the page cache, keyed by the full
// request URI so each page number is its own entry. Only 200 responses
// are stored. Entries age out after ttl; writes elsewhere in the system
// never evict them, so a cached page may lag the true feed by up to ttl.
func CachePage(pages cache.PageCache, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := r.URL.RequestURI()

			cached, found, err := pages.Get(r.Context(), key)
			if err != nil {
				// A broken cache must not take pages down with it.
				log.Printf("[CachePage] Get failed: key=%s err=%v", key, err)
			}
			if found {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write(cached)
				return
			}

			rec := &cacheRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK {
				if err := pages.Set(r.Context(), key, rec.buf.Bytes(), ttl); err != nil {
					log.Printf("[CachePage] Set failed: key=%s err=%v", key, err)
				}
			}
		})
	}
}
