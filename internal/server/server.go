// Package server exposes the parser over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spigell/resume-parser/internal/document"
	"github.com/spigell/resume-parser/internal/extraction"
	"github.com/spigell/resume-parser/internal/resume"
)

const (
	DefaultAddress        = ":8080"
	DefaultMaxUploadBytes = 15 << 20
)

// Config holds the HTTP listener options.
type Config struct {
	Address        string
	MaxUploadBytes int64
}

// Parser is the part of the parsing service the handlers need.
type Parser interface {
	Parse(ctx context.Context, doc *document.Document) (resume.Record, error)
	Supports(ext string) bool
	Steps() []extraction.Status
}

type Server struct {
	app      *fiber.App
	parser   Parser
	logger   *zap.Logger
	address  string
	maxBytes int64
}

func New(cfg Config, parser Parser, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	s := &Server{
		parser:   parser,
		logger:   logger.Named("http"),
		address:  cfg.Address,
		maxBytes: cfg.MaxUploadBytes,
	}

	// multipart framing needs headroom above the file limit
	s.app = fiber.New(fiber.Config{
		AppName:               "resume-parser",
		BodyLimit:             int(cfg.MaxUploadBytes) + 64<<10,
		DisableStartupMessage: true,
	})

	api := s.app.Group("/api/v1")
	api.Get("/health", s.health)
	api.Get("/steps", s.steps)
	api.Post("/parse", s.parse)

	return s
}

// App returns the underlying fiber application.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves until Shutdown is called or the listener fails.
func (s *Server) Listen() error {
	s.logger.Info("http server listening", zap.String("address", s.address))
	return s.app.Listen(s.address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) health(c *fiber.Ctx) error {
	return writeJSON(c, http.StatusOK, fiber.Map{"status": "ok"})
}

func (s *Server) steps(c *fiber.Ctx) error {
	return writeJSON(c, http.StatusOK, s.parser.Steps())
}

func (s *Server) parse(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return writeError(c, http.StatusBadRequest, "file is required")
	}

	ext := document.Ext(fh.Filename)
	if !s.parser.Supports(ext) {
		return writeError(c, http.StatusUnsupportedMediaType, fmt.Sprintf("unsupported file format %q", ext))
	}

	file, err := fh.Open()
	if err != nil {
		return writeError(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, s.maxBytes)
	if err != nil {
		return writeError(c, http.StatusRequestEntityTooLarge, err.Error())
	}

	record, err := s.parser.Parse(c.UserContext(), document.FromBytes(fh.Filename, data))
	if err != nil {
		var extractionErr *document.ExtractionError
		switch {
		case errors.Is(err, document.ErrUnsupportedFormat):
			return writeError(c, http.StatusUnsupportedMediaType, err.Error())
		case errors.As(err, &extractionErr):
			return writeError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			s.logger.Error("resume parsing failed", zap.String("document", fh.Filename), zap.Error(err))
			return writeError(c, http.StatusInternalServerError, "resume parsing failed")
		}
	}

	return writeJSON(c, http.StatusOK, record.Flatten())
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(f, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file exceeds %d bytes", max)
	}
	return b, nil
}
