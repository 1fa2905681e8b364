package server

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/mikey/phish-triage/internal/core"
	"go.uber.org/zap"
)

// analyzeTimeout bounds a single triage at the transport boundary; the
// core itself has no deadline concept.
const analyzeTimeout = 10 * time.Second

// HTTPServer serves the triage pipeline over HTTP: a paste-and-analyze
// form at / and a JSON API at /api/analyze.
type HTTPServer struct {
	service    *core.TriageService
	logger     *zap.Logger
	listenAddr string
	app        *fiber.App
}

// NewHTTPServer creates a new HTTP transport
func NewHTTPServer(service *core.TriageService, logger *zap.Logger, listenAddr string) *HTTPServer {
	return &HTTPServer{
		service:    service,
		logger:     logger,
		listenAddr: listenAddr,
	}
}

// analyzeRequest is the JSON API request body
type analyzeRequest struct {
	Text string `json:"text"`
}

// analyzeResponse is the JSON API response body
type analyzeResponse struct {
	Label       string `json:"label"`
	Confidence  string `json:"confidence"`
	Explanation string `json:"explanation"`
}

// Start starts the HTTP server
func (s *HTTPServer) Start() error {
	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	s.app.Get("/", s.handleHome)
	s.app.Post("/", s.handleAnalyzeForm)
	s.app.Post("/api/analyze", s.handleAnalyzeJSON)

	s.logger.Info("HTTP server starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.app.Listen(s.listenAddr); err != nil {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the HTTP server
func (s *HTTPServer) Stop() error {
	if s.app != nil {
		return s.app.Shutdown()
	}
	return nil
}

// ProcessMessage triages a single block of message text
func (s *HTTPServer) ProcessMessage(ctx context.Context, message string) (*core.Verdict, error) {
	return s.service.Analyze(ctx, message), nil
}

func (s *HTTPServer) handleHome(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf(pageTemplate, ""))
}

func (s *HTTPServer) handleAnalyzeForm(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), analyzeTimeout)
	defer cancel()

	verdict := s.service.Analyze(ctx, c.FormValue("email_text"))

	resultBlock := fmt.Sprintf(resultTemplate,
		html.EscapeString(string(verdict.Label)),
		html.EscapeString(verdict.Confidence),
		html.EscapeString(verdict.Explanation))

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(fmt.Sprintf(pageTemplate, resultBlock))
}

func (s *HTTPServer) handleAnalyzeJSON(c *fiber.Ctx) error {
	var req analyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	ctx, cancel := context.WithTimeout(c.Context(), analyzeTimeout)
	defer cancel()

	verdict := s.service.Analyze(ctx, req.Text)

	return c.JSON(analyzeResponse{
		Label:       string(verdict.Label),
		Confidence:  verdict.Confidence,
		Explanation: verdict.Explanation,
	})
}

const pageTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Phishing Email Detector</title>
    <style>
        body { background: #0d1117; color: #c9d1d9; font-family: sans-serif; text-align: center; }
        .container { width: 80%%; margin: 30px auto; background: #161b22; padding: 25px; border-radius: 10px; border: 1px solid #30363d; }
        textarea { width: 90%%; height: 180px; background: #0d1117; color: #c9d1d9; border: 1px solid #30363d; border-radius: 10px; padding: 10px; resize: none; }
        button { margin-top: 15px; padding: 10px 20px; border: none; background: #007bff; color: white; font-size: 16px; border-radius: 8px; cursor: pointer; }
        .result { margin-top: 25px; text-align: left; background: #0d1117; padding: 15px; border-radius: 10px; border: 1px solid #30363d; }
        h1 { color: #58a6ff; }
        pre { white-space: pre-wrap; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Phishing Email Detector</h1>
        <form method="post" action="/">
            <textarea name="email_text" placeholder="Paste suspicious email, message, or URL here..."></textarea><br>
            <button type="submit">Analyze</button>
        </form>
        %s
    </div>
</body>
</html>
`

const resultTemplate = `<div class="result">
    <h2>%s</h2>
    <p><b>Confidence:</b> %s</p>
    <pre>%s</pre>
</div>`
