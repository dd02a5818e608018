package services

import (
	"fmt"
	"net"
	"time"

	"golang.org/x/crypto/ssh"

	"domainpilot/internal/models"
)

type SSHCheckService struct{}

func NewSSHCheckService() *SSHCheckService {
	return &SSHCheckService{}
}

// Check performs an SSH handshake against the host and reports reachability.
func (s *SSHCheckService) Check(h models.SSHHost) (bool, error) {
	port := h.Port
	if port == 0 {
		port = 22
	}

	cfg := &ssh.ClientConfig{
		User:            h.User,
		Auth:            []ssh.AuthMethod{ssh.Password(h.Password)},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}

	client, err := ssh.Dial("tcp", net.JoinHostPort(h.Host, fmt.Sprint(port)), cfg)
	if err != nil {
		return false, err
	}
	defer client.Close()

	return true, nil
}
