package netutil

import (
	"fmt"
	"net"
	"strings"
)

// Policy restricts which targets may be scanned. When Blocked is non-empty a
// target inside any blocked network is refused. Otherwise, when Allowed is
// non-empty, a target outside every allowed network is refused. An empty
// policy permits everything.
type Policy struct {
	Allowed []*net.IPNet
	Blocked []*net.IPNet
}

// PolicyError reports a target refused by the scan policy.
type PolicyError struct {
	Addr    string
	Network string
}

func (e *PolicyError) Error() string {
	if e.Network != "" {
		return fmt.Sprintf("scanning %s denied: inside blocked network %s", e.Addr, e.Network)
	}
	return fmt.Sprintf("scanning %s denied: outside allowed networks", e.Addr)
}

// ParsePolicy builds a Policy from comma-separated CIDR lists. Either list
// may be empty. Bare IPs are accepted as /32 networks.
func ParsePolicy(allowed, blocked string) (*Policy, error) {
	p := &Policy{}
	var err error
	if p.Allowed, err = parseNetworks(allowed); err != nil {
		return nil, fmt.Errorf("allowed networks: %w", err)
	}
	if p.Blocked, err = parseNetworks(blocked); err != nil {
		return nil, fmt.Errorf("blocked networks: %w", err)
	}
	return p, nil
}

func parseNetworks(list string) ([]*net.IPNet, error) {
	var nets []*net.IPNet
	for _, tok := range strings.Split(list, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if !strings.Contains(tok, "/") {
			tok += "/32"
		}
		_, network, err := net.ParseCIDR(tok)
		if err != nil {
			return nil, fmt.Errorf("parse CIDR %q: %w", tok, err)
		}
		nets = append(nets, network)
	}
	return nets, nil
}

// Check returns a *PolicyError when addr is refused by the policy. It must
// be called on the resolved address, before any probe is started.
func (p *Policy) Check(addr string) error {
	if p == nil {
		return nil
	}
	ip := net.ParseIP(addr)
	if ip == nil {
		return fmt.Errorf("policy check: invalid address %q", addr)
	}
	if len(p.Blocked) > 0 {
		for _, n := range p.Blocked {
			if n.Contains(ip) {
				return &PolicyError{Addr: addr, Network: n.String()}
			}
		}
		return nil
	}
	if len(p.Allowed) > 0 {
		for _, n := range p.Allowed {
			if n.Contains(ip) {
				return nil
			}
		}
		return &PolicyError{Addr: addr}
	}
	return nil
}
