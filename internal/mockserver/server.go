// Package mockserver is a local stand-in for the inference service. It
// answers /chat from a small table of canned answers and prices /predict
// with a fixed heuristic, so the client can be run without the real
// backend.
package mockserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/shieldai/shield/internal/estimator"
	"github.com/shieldai/shield/internal/logger"
)

// Config controls latency, failure injection and pacing.
type Config struct {
	Addr  string
	Delay time.Duration

	// FailChat and FailPredict make the endpoint answer 500.
	FailChat    bool
	FailPredict bool

	// RPS and Burst size the token bucket shared by both endpoints.
	// RPS <= 0 disables limiting.
	RPS   float64
	Burst int
}

// DefaultConfig listens on the client's default origin.
func DefaultConfig() Config {
	return Config{
		Addr:  "127.0.0.1:8000",
		RPS:   5,
		Burst: 5,
	}
}

// Server serves the mock endpoints.
type Server struct {
	cfg     Config
	limiter *rate.Limiter
	sleep   func(ctx context.Context, d time.Duration)
}

// New creates a Server.
func New(cfg Config) *Server {
	s := &Server{cfg: cfg, sleep: sleepCtx}
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}
	return s
}

// Handler returns the routing table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /chat", s.paced(s.handleChat))
	mux.HandleFunc("POST /predict", s.paced(s.handlePredict))
	return mux
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log := logger.WithComponent("mockserver")
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// paced applies the limiter and the artificial delay.
func (s *Server) paced(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			logger.WithComponent("mockserver").Debug("rate limited", "path", r.URL.Path)
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		if s.cfg.Delay > 0 {
			s.sleep(r.Context(), s.cfg.Delay)
		}
		next(w, r)
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "Shield mock service running"})
}

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.cfg.FailChat {
		http.Error(w, "chat failure injected", http.StatusInternalServerError)
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}
	answer := Answer(req.Question)
	logger.WithComponent("mockserver").Debug("chat", "question", req.Question, "chars", len(answer))
	writeJSON(w, http.StatusOK, chatResponse{Answer: answer})
}

type predictResponse struct {
	Premium int `json:"premium"`
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	if s.cfg.FailPredict {
		http.Error(w, "predict failure injected", http.StatusInternalServerError)
		return
	}
	var form estimator.FormState
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid request body", http.StatusUnprocessableEntity)
		return
	}
	premium := Premium(form)
	logger.WithComponent("mockserver").Debug("predict", "form", form, "premium", premium)
	writeJSON(w, http.StatusOK, predictResponse{Premium: premium})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.WithComponent("mockserver").Warn("failed to write response", "error", err)
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// cannedAnswers is matched in order; the first topic whose keyword occurs
// in the question wins.
var cannedAnswers = []struct {
	keywords []string
	answer   string
}{
	{
		keywords: []string{"deductible"},
		answer: "A **deductible** is the amount you pay yourself before the insurer starts paying.\n\n" +
			"- A higher deductible usually means a lower premium\n" +
			"- It applies per policy year on most health plans",
	},
	{
		keywords: []string{"waiting period"},
		answer: "Most Indian health policies have a **waiting period**:\n\n" +
			"1. 30 days for illnesses, except accidents\n" +
			"2. 2-4 years for pre-existing diseases\n" +
			"3. 9 months or more for maternity cover",
	},
	{
		keywords: []string{"cashless"},
		answer: "With **cashless** treatment the insurer settles the bill directly with a network hospital. " +
			"Show your health card at admission and the TPA desk handles pre-authorization.",
	},
	{
		keywords: []string{"claim"},
		answer: "To file a **claim**:\n\n" +
			"1. Inform the insurer within 24 hours of an emergency admission\n" +
			"2. Keep all bills, prescriptions and the discharge summary\n" +
			"3. Submit the claim form within 30 days of discharge",
	},
	{
		keywords: []string{"floater", "family"},
		answer: "A **family floater** covers the whole family under one shared sum insured. " +
			"It is usually cheaper than separate individual policies for a young family.",
	},
	{
		keywords: []string{"premium", "cost", "price"},
		answer: "Premiums depend mainly on `age`, `bmi`, smoking status and pre-existing conditions. " +
			"Try the **Premium Calculator** tab for an estimate.",
	},
	{
		keywords: []string{"80d", "tax"},
		answer: "Under **Section 80D** you can deduct health insurance premiums:\n\n" +
			"- Up to ₹25,000 for yourself, spouse and children\n" +
			"- A further ₹50,000 for parents who are senior citizens",
	},
}

// fallbackAnswer is returned when no topic matches.
const fallbackAnswer = "I'm a demo assistant and only know a few topics: deductibles, waiting periods, " +
	"cashless treatment, claims, family floaters, premiums and Section 80D."

// Answer picks a canned answer for question.
func Answer(question string) string {
	q := strings.ToLower(question)
	for _, c := range cannedAnswers {
		for _, kw := range c.keywords {
			if strings.Contains(q, kw) {
				return c.answer
			}
		}
	}
	return fallbackAnswer
}

var (
	diseaseLoading = map[estimator.Disease]float64{
		estimator.DiseaseNone:         0,
		estimator.DiseaseAsthma:       2500,
		estimator.DiseaseHypertension: 3500,
		estimator.DiseaseDiabetes:     5000,
		estimator.DiseaseHeart:        9000,
		estimator.DiseaseMultiple:     12000,
	}
	policyFactor = map[estimator.PolicyType]float64{
		estimator.PolicyIndividual:    1.0,
		estimator.PolicyFamilyFloater: 1.6,
		estimator.PolicySeniorCitizen: 2.1,
	}
)

// Premium prices a form with a fixed additive model. Like the real
// service it returns whole rupees and accepts any values.
func Premium(f estimator.FormState) int {
	p := 4000.0 + float64(f.Age)*150
	if f.BMI > 25 {
		p += (f.BMI - 25) * 400
	}
	p += float64(f.Children) * 1800
	if f.Smoker == estimator.SmokerYes {
		p += 10000
	}
	if f.Sex == estimator.SexMale {
		p += 500
	}
	p += diseaseLoading[f.Disease]
	if factor, ok := policyFactor[f.PolicyType]; ok {
		p *= factor
	}
	if p < 0 {
		p = 0
	}
	return int(p)
}
