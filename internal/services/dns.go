package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/miekg/dns"

	"domainpilot/internal/config"
)

type DNSService struct {
	cfg *config.Config
}

func NewDNSService(cfg *config.Config) *DNSService {
	return &DNSService{cfg: cfg}
}

// VerifyNameservers checks whether the domain's delegated NS records match
// the nameservers assigned at zone creation. Returns ok plus a human-readable
// detail message; a lookup failure is reported as a message, not an error,
// since unpropagated domains routinely fail to resolve.
func (s *DNSService) VerifyNameservers(domain string, expected []string) (bool, string, error) {
	if len(expected) == 0 {
		return false, "No assigned nameservers on record for this domain", nil
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeNS)

	c := &dns.Client{Timeout: 5 * time.Second}
	resp, _, err := c.Exchange(m, s.cfg.DNSResolver)
	if err != nil {
		return false, fmt.Sprintf("NS lookup failed for %s: %v", domain, err), nil
	}
	if resp.Rcode != dns.RcodeSuccess {
		return false, fmt.Sprintf("NS lookup for %s returned %s", domain, dns.RcodeToString[resp.Rcode]), nil
	}

	found := make(map[string]bool)
	for _, rr := range resp.Answer {
		if ns, ok := rr.(*dns.NS); ok {
			found[strings.TrimSuffix(strings.ToLower(ns.Ns), ".")] = true
		}
	}
	if len(found) == 0 {
		return false, fmt.Sprintf("No NS records found for %s", domain), nil
	}

	for _, want := range expected {
		if !found[strings.TrimSuffix(strings.ToLower(want), ".")] {
			got := make([]string, 0, len(found))
			for ns := range found {
				got = append(got, ns)
			}
			return false, fmt.Sprintf("Nameserver %s not delegated yet (found: %s)", want, strings.Join(got, ", ")), nil
		}
	}

	return true, "Nameservers verified successfully!", nil
}
