package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/simibol/planpoint/internal/app"
)

// Services are the use cases the HTTP surface exposes.
type Services struct {
	Plan          app.PlanUseCase
	Reschedule    app.RescheduleUseCase
	Sessions      app.SessionUseCase
	Milestones    app.MilestoneUseCase
	Notifications app.NotificationUseCase
	Progress      app.ProgressUseCase

	// Ping checks the backing store for /health. Nil skips the check.
	Ping func(ctx context.Context) error
}

type Options struct {
	Location *time.Location
	Clock    func() time.Time
	Logger   *slog.Logger
}

type server struct {
	svc   Services
	loc   *time.Location
	clock func() time.Time
}

func (s *server) now() time.Time { return s.clock().In(s.loc) }

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(svc Services, opts Options) *chi.Mux {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &server{svc: svc, loc: opts.Location, clock: opts.Clock}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(opts.Logger))
	r.Use(Recovery(opts.Logger))

	r.Get("/health", s.health)

	r.Route("/plan", func(r chi.Router) {
		r.Post("/preview", s.planPreview)
		r.Post("/apply", s.planApply)
	})
	r.Post("/reschedule/{mode}", s.reschedule)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.listSessions)
		r.Patch("/{id}/status", s.setSessionStatus)
	})

	r.Route("/milestones", func(r chi.Router) {
		r.Get("/", s.listMilestones)
		r.Delete("/{id}", s.deleteMilestone)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", s.listNotifications)
		r.Post("/{id}/dismiss", s.dismissNotification)
		r.Post("/{id}/snooze", s.snoozeNotification)
	})

	r.Get("/weekly", s.weekly)

	return r
}
