// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package node

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"github.com/NVIDIA/nanojob/pkg/defaults"
	cnserrors "github.com/NVIDIA/nanojob/pkg/errors"
)

// DialFunc opens the transport connection to an edge node.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Shutdowner runs the shutdown command on edge nodes over SSH.
type Shutdowner struct {
	keyPath        string
	knownHosts     string
	user           string
	command        string
	port           int
	dialTimeout    time.Duration
	commandTimeout time.Duration
	dial           DialFunc
}

// Option configures a Shutdowner.
type Option func(*Shutdowner)

// WithKeyPath sets the private key file used to authenticate.
func WithKeyPath(path string) Option {
	return func(s *Shutdowner) {
		s.keyPath = path
	}
}

// WithKnownHosts sets a known_hosts file used to verify host keys.
// When empty, any host key is accepted.
func WithKnownHosts(path string) Option {
	return func(s *Shutdowner) {
		s.knownHosts = path
	}
}

// WithUser sets the remote login name.
func WithUser(user string) Option {
	return func(s *Shutdowner) {
		s.user = user
	}
}

// WithCommand overrides defaults.ShutdownCommand.
func WithCommand(command string) Option {
	return func(s *Shutdowner) {
		s.command = command
	}
}

// WithPort sets the port dialed when the address has none.
func WithPort(port int) Option {
	return func(s *Shutdowner) {
		s.port = port
	}
}

// WithTimeouts overrides the connect and command timeouts.
func WithTimeouts(dial, command time.Duration) Option {
	return func(s *Shutdowner) {
		s.dialTimeout = dial
		s.commandTimeout = command
	}
}

// WithDialer replaces the TCP dialer.
func WithDialer(fn DialFunc) Option {
	return func(s *Shutdowner) {
		s.dial = fn
	}
}

// NewShutdowner returns a Shutdowner with default key path, port, command
// and timeouts. A user must be configured before Shutdown succeeds.
func NewShutdowner(opts ...Option) *Shutdowner {
	s := &Shutdowner{
		keyPath:        defaults.SSHKeyPath,
		command:        defaults.ShutdownCommand,
		port:           defaults.SSHPort,
		dialTimeout:    defaults.SSHDialTimeout,
		commandTimeout: defaults.ShutdownCommandTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.dial == nil {
		d := &net.Dialer{Timeout: s.dialTimeout}
		s.dial = d.DialContext
	}
	return s
}

// Shutdown logs into address as the configured user and starts the shutdown
// command. host only labels logs and errors.
//
// The node usually drops the connection before reporting an exit status, so
// a torn-down session or a command still running after the command timeout
// counts as success. Only a non-zero exit status is a failure.
func (s *Shutdowner) Shutdown(ctx context.Context, host, address string) (err error) {
	defer observeShutdown(&err)

	if address == "" {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			"a valid address or hostname is required for shutdown")
	}
	if s.user == "" {
		return cnserrors.New(cnserrors.ErrCodeInvalidRequest,
			"shutdown username is not configured")
	}

	ectx := map[string]any{"host": host, "address": address}

	cfg, err := s.clientConfig()
	if err != nil {
		return err
	}

	target := s.target(address)
	slog.Info("initiating remote shutdown", "host", host, "address", target, "user", s.user)

	client, err := s.connect(ctx, target, cfg)
	if err != nil {
		var keyErr *knownhosts.KeyError
		if errors.As(err, &keyErr) {
			return cnserrors.WrapWithContext(cnserrors.ErrCodeInternal,
				"host key verification failed", err, ectx)
		}
		return cnserrors.WrapWithContext(cnserrors.ErrCodeUpstreamUnavailable,
			"failed to connect to node", err, ectx)
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			slog.Debug("failed to close ssh client", "host", host, "error", cerr)
		}
	}()

	session, err := client.NewSession()
	if err != nil {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeUpstreamUnavailable,
			"failed to open ssh session", err, ectx)
	}
	defer session.Close()

	if err = session.Start(s.command); err != nil {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeInternal,
			"failed to start shutdown command", err, ectx)
	}

	if err = s.wait(ctx, session); err != nil {
		return cnserrors.WrapWithContext(cnserrors.ErrCodeInternal,
			"shutdown command failed", err, ectx)
	}

	slog.Info("shutdown command sent", "host", host, "address", target, "user", s.user)
	return nil
}

func (s *Shutdowner) wait(ctx context.Context, session *ssh.Session) error {
	done := make(chan error, 1)
	go func() {
		done <- session.Wait()
	}()

	timer := time.NewTimer(s.commandTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		var missing *ssh.ExitMissingError
		if err == nil || errors.As(err, &missing) || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Shutdowner) connect(ctx context.Context, target string, cfg *ssh.ClientConfig) (*ssh.Client, error) {
	dctx, cancel := context.WithTimeout(ctx, s.dialTimeout)
	defer cancel()

	conn, err := s.dial(dctx, "tcp", target)
	if err != nil {
		return nil, err
	}

	// handshake is bounded by the same deadline as the dial
	if deadline, ok := dctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	c, chans, reqs, err := ssh.NewClientConn(conn, target, cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	_ = conn.SetDeadline(time.Time{})

	return ssh.NewClient(c, chans, reqs), nil
}

func (s *Shutdowner) clientConfig() (*ssh.ClientConfig, error) {
	key, err := os.ReadFile(s.keyPath)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInternal,
			"ssh key not readable", err, map[string]any{"path": s.keyPath})
	}
	signer, err := ssh.ParsePrivateKey(key)
	if err != nil {
		return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInternal,
			"ssh key not parseable", err, map[string]any{"path": s.keyPath})
	}

	hostKeys := ssh.InsecureIgnoreHostKey() //nolint:gosec // nodes are addressed by IP on a private network
	if s.knownHosts != "" {
		hostKeys, err = knownhosts.New(s.knownHosts)
		if err != nil {
			return nil, cnserrors.WrapWithContext(cnserrors.ErrCodeInternal,
				"known_hosts not readable", err, map[string]any{"path": s.knownHosts})
		}
	} else {
		slog.Warn("ssh host keys are not verified", "hint", "set SSH_KNOWN_HOSTS")
	}

	return &ssh.ClientConfig{
		User:            s.user,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: hostKeys,
		Timeout:         s.dialTimeout,
	}, nil
}

// target appends the default port unless address already carries one.
func (s *Shutdowner) target(address string) string {
	if _, _, err := net.SplitHostPort(address); err == nil {
		return address
	}
	return net.JoinHostPort(address, strconv.Itoa(s.port))
}

// String describes the configuration without secrets.
func (s *Shutdowner) String() string {
	return fmt.Sprintf("user=%q key=%s port=%d known_hosts=%q", s.user, s.keyPath, s.port, s.knownHosts)
}
