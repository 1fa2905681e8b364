package server

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/mikey/phish-triage/internal/core"
	"go.uber.org/zap"
)

// PostfixServer implements a Postfix content filter: it accepts messages
// over SMTP, triages their text content, stamps verdict headers and
// re-injects the message into Postfix.
type PostfixServer struct {
	service          *core.TriageService
	logger           *zap.Logger
	listenAddr       string
	server           *smtp.Server
	blockPhishing    bool
	statusHeader     string
	confidenceHeader string
	reasonHeader     string
	postfixAddr      string
	postfixPort      int
	postfixEnabled   bool
}

// NewPostfixServer creates a new Postfix content filter
func NewPostfixServer(
	service *core.TriageService,
	logger *zap.Logger,
	listenAddr string,
	blockPhishing bool,
	statusHeader string,
	confidenceHeader string,
	reasonHeader string,
	postfixAddr string,
	postfixPort int,
	postfixEnabled bool,
) *PostfixServer {
	return &PostfixServer{
		service:          service,
		logger:           logger,
		listenAddr:       listenAddr,
		blockPhishing:    blockPhishing,
		statusHeader:     statusHeader,
		confidenceHeader: confidenceHeader,
		reasonHeader:     reasonHeader,
		postfixAddr:      postfixAddr,
		postfixPort:      postfixPort,
		postfixEnabled:   postfixEnabled,
	}
}

// Start starts the SMTP server
func (s *PostfixServer) Start() error {
	s.server = smtp.NewServer(&smtpBackend{server: s})

	s.server.Addr = s.listenAddr
	s.server.Domain = "localhost"
	s.server.ReadTimeout = 30 * time.Second
	s.server.WriteTimeout = 30 * time.Second
	s.server.MaxMessageBytes = 30 * 1024 * 1024 // 30MB
	s.server.MaxRecipients = 50
	s.server.AllowInsecureAuth = true

	s.logger.Info("Postfix filter starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				s.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (s *PostfixServer) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// ProcessMessage triages a single block of message text
func (s *PostfixServer) ProcessMessage(ctx context.Context, message string) (*core.Verdict, error) {
	return s.service.Analyze(ctx, message), nil
}

// sendToPostfix re-injects the stamped message into Postfix
func (s *PostfixServer) sendToPostfix(sender string, recipients []string, messageData []byte) error {
	postfixAddr := fmt.Sprintf("%s:%d", s.postfixAddr, s.postfixPort)

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}

	conn, err := net.DialTimeout("tcp", postfixAddr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("failed to connect to Postfix: %w", err)
	}

	if err := conn.SetDeadline(time.Now().Add(30 * time.Second)); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}
	if err := c.Mail(sender, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range recipients {
		if err := c.Rcpt(recipient, nil); err != nil {
			s.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
		} else {
			recipientOK = true
		}
	}
	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(messageData); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send message data: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		s.logger.Warn("QUIT command failed", zap.Error(err))
	}

	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	server *PostfixServer
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		server:     b.server,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	server     *PostfixServer
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// Logout handles session termination
func (s *smtpSession) Logout() error {
	return nil
}

// AuthPlain handles PLAIN authentication (not needed for a content filter)
func (s *smtpSession) AuthPlain(_, _ string) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data triages the message and forwards it with verdict headers
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.server.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.server.logger.Error("Failed to parse message", zap.Error(err))
		return err
	}

	textContent, err := extractTextFromMessage(msg)
	if err != nil {
		s.server.logger.Error("Failed to extract text content", zap.Error(err))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
	defer cancel()

	verdict := s.server.service.Analyze(ctx, textContent)

	s.server.logger.Info("Triaged SMTP message",
		zap.String("sender", s.sender),
		zap.String("label", string(verdict.Label)),
		zap.String("confidence", verdict.Confidence))

	if verdict.Label == core.LabelPhishing && s.server.blockPhishing {
		s.server.logger.Info("Rejecting phishing message",
			zap.String("sender", s.sender),
			zap.String("confidence", verdict.Confidence),
			zap.String("reason", verdict.Explanation))
		return fmt.Errorf("550 Rejected as phishing (confidence: %s)", verdict.Confidence)
	}

	stamped := s.stampHeaders(rawData, msg, verdict)

	if s.server.postfixEnabled {
		if err := s.server.sendToPostfix(s.sender, s.recipients, stamped); err != nil {
			s.server.logger.Error("Failed to re-inject message", zap.Error(err))
			return err
		}
	}

	return nil
}

// stampHeaders prepends the verdict headers to the original message
func (s *smtpSession) stampHeaders(rawData []byte, msg *mail.Message, verdict *core.Verdict) []byte {
	var stamped bytes.Buffer

	// Header values must be single-line
	reason := strings.ReplaceAll(verdict.Explanation, "\n", "; ")

	fmt.Fprintf(&stamped, "%s: %s\r\n", s.server.statusHeader, verdict.Label)
	fmt.Fprintf(&stamped, "%s: %s\r\n", s.server.confidenceHeader, verdict.Confidence)
	fmt.Fprintf(&stamped, "%s: %s\r\n", s.server.reasonHeader, reason)

	for key, values := range msg.Header {
		for _, value := range values {
			fmt.Fprintf(&stamped, "%s: %s\r\n", key, value)
		}
	}
	fmt.Fprintf(&stamped, "\r\n")

	// Copy the original body bytes untouched
	bodyStart := bytes.Index(rawData, []byte("\r\n\r\n"))
	sepLen := 4
	if bodyStart == -1 {
		bodyStart = bytes.Index(rawData, []byte("\n\n"))
		sepLen = 2
	}
	if bodyStart != -1 {
		stamped.Write(rawData[bodyStart+sepLen:])
	} else if body, err := io.ReadAll(msg.Body); err == nil {
		stamped.Write(body)
	}

	return stamped.Bytes()
}
