package registrar

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const namecheapEndpoint = "https://api.namecheap.com/xml.response"

// Namecheap pushes nameservers through the namecheap.domains.dns.setCustom
// command of the XML API.
type Namecheap struct {
	http     *http.Client
	endpoint string
	apiUser  string
	apiKey   string
	username string
	clientIP string
}

func NewNamecheap(apiUser, apiKey, username, clientIP string) *Namecheap {
	return &Namecheap{
		http:     &http.Client{Timeout: 30 * time.Second},
		endpoint: namecheapEndpoint,
		apiUser:  apiUser,
		apiKey:   apiKey,
		username: username,
		clientIP: clientIP,
	}
}

type namecheapResponse struct {
	XMLName xml.Name `xml:"ApiResponse"`
	Status  string   `xml:"Status,attr"`
	Errors  struct {
		Error []string `xml:"Error"`
	} `xml:"Errors"`
}

func (n *Namecheap) SetNameservers(ctx context.Context, domain string, nameservers []string) error {
	sld, tld, err := splitDomain(domain)
	if err != nil {
		return err
	}

	q := url.Values{}
	q.Set("ApiUser", n.apiUser)
	q.Set("ApiKey", n.apiKey)
	q.Set("UserName", n.username)
	q.Set("ClientIp", n.clientIP)
	q.Set("Command", "namecheap.domains.dns.setCustom")
	q.Set("SLD", sld)
	q.Set("TLD", tld)
	q.Set("Nameservers", strings.Join(nameservers, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := n.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var out namecheapResponse
	if err := xml.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("namecheap: decoding response: %w", err)
	}
	if !strings.EqualFold(out.Status, "OK") {
		if len(out.Errors.Error) > 0 {
			return fmt.Errorf("namecheap: %s", strings.Join(out.Errors.Error, "; "))
		}
		return fmt.Errorf("namecheap: request failed with status %q", out.Status)
	}
	return nil
}

// splitDomain separates example.co.uk into SLD "example" and TLD "co.uk".
func splitDomain(domain string) (sld, tld string, err error) {
	parts := strings.SplitN(domain, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid domain %q", domain)
	}
	return parts[0], parts[1], nil
}
