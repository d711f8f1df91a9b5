package httpx

import (
	"net"
	"net/http"
	"strings"
)

// RealIP resolves the originating client IP for a request. The first entry
// of X-Forwarded-For wins when a proxy supplied one, then X-Real-IP, then
// the connection's RemoteAddr with the port stripped.
func RealIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			if ip := strings.TrimSpace(ips[0]); ip != "" {
				return ip
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
