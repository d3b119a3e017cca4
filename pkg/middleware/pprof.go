package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/AngelsParadise/pkg/httputil"
)

// RegisterPprof mounts /debug/pprof/* behind a CIDR allowlist. With no
// CIDRs configured nothing is mounted.
func RegisterPprof(r chi.Router, allowedCIDRs []string, logger *slog.Logger) {
	if len(allowedCIDRs) == 0 {
		return
	}
	r.Group(func(r chi.Router) {
		r.Use(IPAllowlist(allowedCIDRs, logger))
		r.HandleFunc("/debug/pprof/*", pprof.Index)
		r.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		r.HandleFunc("/debug/pprof/profile", pprof.Profile)
		r.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		r.HandleFunc("/debug/pprof/trace", pprof.Trace)
	})
}

// IPAllowlist rejects requests whose remote address falls outside cidrs.
// Invalid CIDRs are logged and skipped.
func IPAllowlist(cidrs []string, logger *slog.Logger) func(http.Handler) http.Handler {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			logger.Warn("invalid allowlist CIDR, skipping",
				slog.String("cidr", cidr),
				slog.String("error", err.Error()),
			)
			continue
		}
		nets = append(nets, ipNet)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}
			if ip := net.ParseIP(host); ip != nil {
				for _, n := range nets {
					if n.Contains(ip) {
						next.ServeHTTP(w, r)
						return
					}
				}
			}

			logger.Warn("access denied by IP allowlist",
				slog.String("ip", host),
				slog.String("path", r.URL.Path),
			)
			httputil.WriteJSON(w, http.StatusForbidden, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "FORBIDDEN", Message: "access restricted by IP allowlist"},
			})
		})
	}
}
