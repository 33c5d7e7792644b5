package middleware

import (
	"context"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/wayfinder"
)

const unknownIP = "0.0.0.0"

// ipHeaders are checked in order for the addresses a request was forwarded for.
var ipHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// reservedPrefixes are IANA non-public ranges netip.Addr.IsPrivate does not cover.
var reservedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress stashes the visitor's address, as GetIPAddress finds it,
// in the request context under wayfinder.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), wayfinder.IpAddrKey, GetIPAddress(r.Header))
			h.ServeHTTP(w, r.Clone(ctx))
		})
	}
}

// GetIPAddress finds the visitor's address in the "X-Forwarded-For" or "X-Real-Ip" headers.
//
// Proxies append to these lists, so GetIPAddress reads them right to left,
// returning the first public address: the one just before our own proxies.
// Without one, "0.0.0.0" returns.
func GetIPAddress(hm http.Header) string {
	for _, key := range ipHeaders {
		addrs := strings.Split(hm.Get(key), ",")
		for i := len(addrs) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(addrs[i]))
			if err != nil {
				continue
			}

			if addr = addr.Unmap(); isPublic(addr) {
				return addr.String()
			}
		}
	}

	return unknownIP
}

func isPublic(addr netip.Addr) bool {
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	for _, p := range reservedPrefixes {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}
