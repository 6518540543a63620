package fetcher

import (
	"fmt"
	"net"
	"net/url"
	"syscall"

	"newsbrief/internal/domain/entity"
)

// validateURL accepts only the article links the reader would open itself
// (absolute http/https). With denyPrivateIPs it also refuses hosts that
// resolve to an internal address, since article URLs come from a third party.
// The lookup here only fails early; denyPrivateDial enforces the rule on the
// address actually connected to.
func validateURL(rawURL string, denyPrivateIPs bool) error {
	if err := entity.ValidateArticleURL(rawURL); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !denyPrivateIPs {
		return nil
	}

	u, _ := url.Parse(rawURL)
	host := u.Hostname()
	ips, err := net.LookupIP(host)
	if err != nil {
		return fmt.Errorf("%w: resolve %s: %v", ErrInvalidURL, host, err)
	}
	for _, ip := range ips {
		if isPrivateIP(ip) {
			return fmt.Errorf("%w: %s -> %s", ErrPrivateIP, host, ip)
		}
	}
	return nil
}

// isPrivateIP covers loopback, RFC 1918 / fc00::/7, link-local and the
// unspecified address.
func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// denyPrivateDial is a net.Dialer Control hook. address is the resolved
// ip:port, so a host that re-resolves to an internal address between
// validateURL and the dial is still refused.
func denyPrivateDial(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: dial address %q: %v", ErrInvalidURL, address, err)
	}
	if ip := net.ParseIP(host); ip == nil || isPrivateIP(ip) {
		return fmt.Errorf("%w: refusing to dial %s", ErrPrivateIP, host)
	}
	return nil
}
