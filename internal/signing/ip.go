package signing

import (
	"net"
	"net/http"
	"strings"

	"github.com/narith-dev/RentSign/internal/constant"
)

// ClientIP extracts the signer's address for the audit trail: the first
// X-Forwarded-For entry when a proxy set one, otherwise the socket address.
// When neither yields anything usable the unknown value is recorded, the
// signature itself never fails over a missing address.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}

	return constant.UnknownSignerValue
}
