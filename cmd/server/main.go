package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"ielts-coach/internal/aijson"
	"ielts-coach/internal/app"
	"ielts-coach/internal/exam"
	"ielts-coach/internal/httputil"
	"ielts-coach/internal/provider"
	"ielts-coach/internal/settings"
)

func main() {
	deps, err := app.Build()
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.KV.Close()

	r := newRouter(deps)

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		deps.Log.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		deps.Log.Error("server error", "err", err)
		os.Exit(1)
	}
}

func newRouter(deps app.Deps) *chi.Mux {
	r := httputil.NewRouter(deps.Log)

	r.Get("/healthz", httputil.HealthHandler(deps.Log))
	r.Route("/api", func(r chi.Router) {
		r.Get("/providers", providersHandler())
		r.Get("/settings", getSettingsHandler(deps))
		r.Put("/settings", saveSettingsHandler(deps))
		r.Post("/writing/evaluate", evaluateHandler(deps))
		r.Post("/reading/generate", readingHandler(deps))
		r.Post("/speaking/sessions", createSessionHandler(deps))
		r.Post("/speaking/sessions/{id}/messages", sessionMessageHandler(deps))
		r.Delete("/speaking/sessions/{id}", deleteSessionHandler(deps))
	})
	return r
}

type evaluateRequest struct {
	Question string `json:"question" validate:"required"`
	Essay    string `json:"essay" validate:"required"`
}

type readingRequest struct {
	Topic     string `json:"topic" validate:"required"`
	Questions int    `json:"questions" validate:"omitempty,min=1,max=10"`
}

type sessionMessageRequest struct {
	Text string `json:"text" validate:"required"`
}

func providersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, provider.All())
	}
}

func getSettingsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, deps.Settings.Load(r.Context()))
	}
}

func saveSettingsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req settings.UserSettings
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := deps.Settings.Save(r.Context(), req); err != nil {
			httputil.Fail(deps.Log, w, err.Error(), err, http.StatusBadRequest)
			return
		}
		// Live sessions were built from the old settings; drop them so
		// every later call observes the new provider.
		deps.Sessions.Reset()
		httputil.WriteJSON(w, http.StatusOK, deps.Settings.Load(r.Context()))
	}
}

func evaluateHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		feedback, err := deps.Exam.EvaluateEssay(r.Context(), req.Question, req.Essay)
		if err != nil {
			writeAIError(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, feedback)
	}
}

func readingHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req readingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		practice, err := deps.Exam.GenerateReading(r.Context(), req.Topic, req.Questions)
		if err != nil {
			writeAIError(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, practice)
	}
}

func createSessionHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := deps.Exam.NewSpeakingSession(r.Context())
		if err != nil {
			writeAIError(deps.Log, w, err)
			return
		}
		id := deps.Sessions.Add(session)
		httputil.WriteJSON(w, http.StatusCreated, map[string]string{"session_id": id})
	}
}

func sessionMessageHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sessionMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.ValidationError(deps.Log, w, err)
			return
		}

		session, ok := deps.Sessions.Get(chi.URLParam(r, "id"))
		if !ok {
			httputil.Fail(deps.Log, w, exam.ErrSessionNotFound.Error(), exam.ErrSessionNotFound, http.StatusNotFound)
			return
		}

		reply, err := session.SendMessage(r.Context(), req.Text)
		if err != nil {
			writeAIError(deps.Log, w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
	}
}

func deleteSessionHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deps.Sessions.Remove(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// writeAIError maps the error taxonomy onto HTTP statuses: bad input and
// missing credentials are the caller's to fix, provider and decoding
// failures are upstream problems.
func writeAIError(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, exam.ErrMissingInput):
		httputil.Fail(log, w, err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, exam.ErrNotConfigured):
		httputil.Fail(log, w, "cannot connect to the AI provider, check settings", err, http.StatusBadRequest)
	case errors.Is(err, aijson.ErrMalformed):
		httputil.Fail(log, w, "generation failed", err, http.StatusBadGateway)
	default:
		httputil.Fail(log, w, err.Error(), err, http.StatusBadGateway)
	}
}
