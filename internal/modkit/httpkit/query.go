package httpkit

import (
	"net/http"
	"strconv"
)

// QueryStr reads a query parameter, returning def when absent
func QueryStr(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

// QueryInt reads an integer query parameter, returning def when absent or malformed
func QueryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
