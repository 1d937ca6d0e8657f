package ratelimit

import (
	"net/netip"
	"strings"
)

// ClientKey normalizes a source IP into a stable limiter key: zone stripped,
// canonical textual form, so the same client always maps to one key. Input
// that does not parse as an IP is trimmed and used verbatim.
func ClientKey(ip string) string {
	trimmed := strings.TrimSpace(ip)
	addr, err := netip.ParseAddr(trimmed)
	if err != nil {
		return trimmed
	}
	return addr.WithZone("").String()
}
