package services

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/net/proxy"

	"domainpilot/internal/models"
)

// checkTarget is a host the proxy must be able to reach to count as alive.
const checkTarget = "cloudflare.com:443"

type ProxyCheckService struct{}

func NewProxyCheckService() *ProxyCheckService {
	return &ProxyCheckService{}
}

// Check dials through the SOCKS5 proxy and reports liveness and latency.
func (s *ProxyCheckService) Check(p models.Proxy) (bool, time.Duration, error) {
	var auth *proxy.Auth
	if p.Username != "" {
		auth = &proxy.Auth{User: p.Username, Password: p.Password}
	}

	addr := net.JoinHostPort(p.Host, fmt.Sprint(p.Port))
	dialer, err := proxy.SOCKS5("tcp", addr, auth, &net.Dialer{Timeout: 10 * time.Second})
	if err != nil {
		return false, 0, err
	}

	start := time.Now()
	conn, err := dialer.Dial("tcp", checkTarget)
	if err != nil {
		return false, 0, err
	}
	defer conn.Close()

	return true, time.Since(start), nil
}
