package terminal

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gliderlabs/ssh"
)

const sshIdleTimeout = 5 * time.Minute

// NewSSHServer serves one Session per SSH connection. Sessions without a pty
// get plain output. An empty hostKeyFile lets the server generate a key.
func NewSSHServer(addr, hostKeyFile string) (*ssh.Server, error) {
	s := &ssh.Server{
		Addr:        addr,
		IdleTimeout: sshIdleTimeout,
		Handler:     sshHandle,
	}
	if hostKeyFile != "" {
		if err := s.SetOption(ssh.HostKeyFile(hostKeyFile)); err != nil {
			return nil, fmt.Errorf("loading host key %s: %w", hostKeyFile, err)
		}
	}
	return s, nil
}

func sshHandle(s ssh.Session) {
	_, _, isPty := s.Pty()
	log.Printf("ssh session from %s (%s)", s.RemoteAddr(), s.User())

	if err := NewSession(s, s, isPty).Run(); err != nil {
		io.WriteString(s, fmt.Sprintf("session error: %s\n", err))
		s.Exit(1)
		return
	}
	s.Exit(0)
}
