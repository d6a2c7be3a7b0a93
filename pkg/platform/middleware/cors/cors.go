package cors

import (
	"fmt"
	"net/http"
	"regexp"
	"slices"
)

// CompilePatterns compiles origin patterns. Each pattern must match the whole
// origin.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`^(?:` + p + `)$`)
		if err != nil {
			return nil, fmt.Errorf("cors origin pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// Middleware allows cross-origin calls from the configured origins, or from
// origins matching one of patterns. A "*" entry allows any origin. Preflight
// requests are answered directly.
func Middleware(origins []string, patterns []*regexp.Regexp) func(http.Handler) http.Handler {
	allowAll := slices.Contains(origins, "*")
	allowed := func(origin string) bool {
		if allowAll || slices.Contains(origins, origin) {
			return true
		}
		return slices.ContainsFunc(patterns, func(re *regexp.Regexp) bool {
			return re.MatchString(origin)
		})
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && allowed(origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				h.Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
