package logger

import (
	"net/http"
	"strings"
	"sync"
)

var (
	allowMu    sync.RWMutex
	allowPaths = map[string]struct{}{}
)

// AllowBodyLogging opts routes into request-body logging. Nothing is
// allowlisted by default.
func AllowBodyLogging(paths ...string) {
	allowMu.Lock()
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p != "" {
			allowPaths[p] = struct{}{}
		}
	}
	allowMu.Unlock()
}

// Only log small JSON request bodies on allowlisted routes.
func shouldLogBody(r *http.Request, body []byte) bool {
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		return false
	}
	if len(body) == 0 || len(body) > 1<<16 { // 64 KiB cap
		return false
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return false
	}
	allowMu.RLock()
	_, ok := allowPaths[r.URL.Path]
	allowMu.RUnlock()
	return ok
}
