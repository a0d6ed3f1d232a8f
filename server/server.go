package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/RyanBlaney/sonido-voz/analysis"
	"github.com/RyanBlaney/sonido-voz/logging"
	"github.com/RyanBlaney/sonido-voz/transcode"
)

// Version is the reported service version
const Version = "1.0"

// Config holds HTTP server settings
type Config struct {
	ListenAddr      string
	MaxPayloadChars int
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns the default HTTP settings
func DefaultServerConfig() *Config {
	return &Config{
		ListenAddr:      ":8080",
		MaxPayloadChars: 10_000_000,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Server exposes the analysis pipeline over HTTP
type Server struct {
	config   *Config
	analyzer *analysis.Analyzer
}

// NewServer creates a server around an analyzer. Nil configs use
// defaults.
func NewServer(config *Config, analyzer *analysis.Analyzer) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	if analyzer == nil {
		analyzer = analysis.NewAnalyzer(nil)
	}
	return &Server{config: config, analyzer: analyzer}
}

// Handler returns the full middleware-wrapped route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/health", s.handleHealth)
	return withRequestID(withCORS(mux))
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.ListenAddr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("http server listening", logging.Fields{"addr": s.config.ListenAddr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type analyzeRequest struct {
	AudioBase64 string `json:"audio_base64"`
	SampleRate  int    `json:"sample_rate"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	logger := logging.WithFields(logging.Fields{
		"component":  "http",
		"request_id": requestIDFrom(r),
	})

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	// Size and presence checks run on the encoded string, before any
	// base64 or audio decode work
	if err := s.validatePayload(req.AudioBase64); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.AudioBase64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "audio_base64 is not valid base64: "+err.Error())
		return
	}

	start := time.Now()
	report, err := s.analyzer.AnalyzeBytes(raw, req.SampleRate)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "voice analysis failed: " + err.Error()

		switch {
		case errors.Is(err, analysis.ErrEmptyPayload),
			errors.Is(err, analysis.ErrTooShort),
			transcode.IsDecodeError(err):
			status = http.StatusBadRequest
			msg = err.Error()
		default:
			logger.Error(err, "analysis pipeline failure")
		}

		writeError(w, status, msg)
		return
	}

	logger.Info("clip analyzed", logging.Fields{
		"duration_sec": report.Analysis.DurationSec,
		"voice_type":   string(report.VoiceType),
		"overall":      report.Scores.Overall,
		"elapsed_ms":   time.Since(start).Milliseconds(),
	})

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) validatePayload(b64 string) error {
	if b64 == "" {
		return fmt.Errorf("%w: audio_base64 is required", analysis.ErrEmptyPayload)
	}
	if len(b64) > s.config.MaxPayloadChars {
		return fmt.Errorf("%w: max %d characters", analysis.ErrPayloadTooLarge, s.config.MaxPayloadChars)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"service":  "voice-analysis",
		"version":  Version,
		"features": []string{"clarity", "stability", "warmth", "expressiveness", "listenability"},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error(err, "write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type requestIDKey struct{}

// withRequestID tags every request with a correlation ID, honoring a
// caller-supplied X-Request-ID
func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// withCORS allows browser clients from any origin; the service carries
// no credentials or cookies
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
