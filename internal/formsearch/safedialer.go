package formsearch

import (
	"fmt"
	"net"
	"net/netip"
	"syscall"
	"time"
)

// BlockedAddressError reports a dial refused because the resolved address is
// not publicly routable. Form actions are dialed through the same check, so
// action="http://169.254.169.254/" fails here too.
type BlockedAddressError struct {
	// Address is the host:port handed to the dialer after DNS resolution.
	Address string
	// Addr is the parsed IP, invalid when Address could not be parsed.
	Addr netip.Addr
	// Range names the block the address fell into, e.g. "loopback".
	Range string
}

func (e *BlockedAddressError) Error() string {
	return fmt.Sprintf("dial %s refused: %s address", e.Address, e.Range)
}

type reservedRange struct {
	prefix netip.Prefix
	name   string
}

// Ranges that netip.Addr's own predicates do not classify.
var reservedRanges = []reservedRange{
	{netip.MustParsePrefix("100.64.0.0/10"), "carrier-grade NAT"},      // RFC 6598
	{netip.MustParsePrefix("192.0.0.0/24"), "IETF protocol assignment"}, // RFC 6890
	{netip.MustParsePrefix("192.0.2.0/24"), "documentation"},            // TEST-NET-1, RFC 5737
	{netip.MustParsePrefix("198.18.0.0/15"), "benchmarking"},            // RFC 2544
	{netip.MustParsePrefix("198.51.100.0/24"), "documentation"},         // TEST-NET-2, RFC 5737
	{netip.MustParsePrefix("203.0.113.0/24"), "documentation"},          // TEST-NET-3, RFC 5737
}

// publicDialer returns a dialer that only connects to globally routable
// unicast addresses. The check runs on the resolved address, so a hostname
// that re-resolves to an internal address is refused as well.
func publicDialer() *net.Dialer {
	return &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
		Control:   refuseNonPublic,
	}
}

func refuseNonPublic(_, address string, _ syscall.RawConn) error {
	addrPort, err := netip.ParseAddrPort(address)
	if err != nil {
		return &BlockedAddressError{Address: address, Range: "unparseable"}
	}
	if r := addressRange(addrPort.Addr()); r != "" {
		return &BlockedAddressError{Address: address, Addr: addrPort.Addr(), Range: r}
	}
	return nil
}

// addressRange names the non-public range addr belongs to, or returns ""
// for a public address.
func addressRange(addr netip.Addr) string {
	// ::ffff:10.0.0.1 must be judged as 10.0.0.1.
	addr = addr.Unmap()
	switch {
	case addr.IsUnspecified():
		return "unspecified"
	case addr.IsLoopback():
		return "loopback"
	case addr.IsPrivate():
		return "private"
	case addr.IsLinkLocalUnicast(), addr.IsLinkLocalMulticast():
		return "link-local"
	case !addr.IsGlobalUnicast():
		return "non-unicast"
	}
	for _, r := range reservedRanges {
		if r.prefix.Contains(addr) {
			return r.name
		}
	}
	return ""
}
