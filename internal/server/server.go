package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dieserjulian777/Cryptobot-Charles/internal/domain"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/sequencer"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/signal"
	"github.com/dieserjulian777/Cryptobot-Charles/internal/storage"
)

// Server exposes the webhook over HTTP. It is a thin translation layer:
// parse, validate, hand off to the sequencer, map the result to a status
// code. All trading decisions live below it.
type Server struct {
	validator *signal.Validator
	sequencer *sequencer.Sequencer
	journal   *storage.Journal // optional
}

// New creates the HTTP layer. journal may be nil to disable journaling.
func New(validator *signal.Validator, seq *sequencer.Sequencer, journal *storage.Journal) *Server {
	return &Server{
		validator: validator,
		sequencer: seq,
		journal:   journal,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/webhook", s.handleWebhook).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	return r
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var raw signal.RawAlert
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		writeText(w, http.StatusInternalServerError, fmt.Sprintf("Error: %v", err))
		return
	}

	sig, err := s.validator.Validate(raw)
	if err != nil {
		s.writeRejection(w, raw, err)
		return
	}

	slog.Info("Webhook signal accepted",
		slog.String("symbol", sig.Symbol),
		slog.String("direction", string(sig.Direction)),
		slog.String("entry", sig.EntryPrice.String()),
	)

	seq, execErr := s.sequencer.Execute(r.Context(), sig)
	s.record(r.Context(), seq, execErr)

	if execErr != nil {
		writeText(w, http.StatusInternalServerError, fmt.Sprintf("Error: %v", execErr))
		return
	}
	writeText(w, http.StatusOK, "Trade executed")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "ok")
}

// writeRejection maps validation failures onto the response contract:
// unauthorized instruments get a dedicated 403, everything else is the
// generic 500 the alerting platform shows verbatim.
func (s *Server) writeRejection(w http.ResponseWriter, raw signal.RawAlert, err error) {
	var unauthorized *domain.UnauthorizedInstrumentError
	if errors.As(err, &unauthorized) {
		slog.Warn("Rejected unauthorized instrument", slog.String("ticker", raw.Ticker))
		writeText(w, http.StatusForbidden, "Coin not authorized")
		return
	}

	slog.Warn("Rejected malformed alert", slog.Any("error", err))
	writeText(w, http.StatusInternalServerError, fmt.Sprintf("Error: %v", err))
}

// record journals the pass. Journal failures are logged and swallowed:
// the trade already happened, the response must reflect that.
func (s *Server) record(ctx context.Context, seq *domain.OrderSequence, execErr error) {
	if s.journal == nil || seq == nil {
		return
	}
	if err := s.journal.Record(ctx, seq, execErr); err != nil {
		slog.Error("Journal write failed", slog.Any("error", err))
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
