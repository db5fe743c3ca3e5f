package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pitb-dev/wwh-gateway/api/controllers"
	"github.com/pitb-dev/wwh-gateway/api/middleware"
	"github.com/pitb-dev/wwh-gateway/internal/identity"
	"github.com/pitb-dev/wwh-gateway/internal/progress"
	"github.com/pitb-dev/wwh-gateway/internal/registration"
	"github.com/pitb-dev/wwh-gateway/pkg/auth/session"
	"github.com/pitb-dev/wwh-gateway/pkg/config"
	"github.com/pitb-dev/wwh-gateway/pkg/logger"
	"github.com/pitb-dev/wwh-gateway/pkg/redis"
	"github.com/pitb-dev/wwh-gateway/pkg/upstream"
)

type sessionManager interface {
	session.AccessSessionChecker
	Create(ctx context.Context, user session.CurrentUser) (string, error)
	Revoke(ctx context.Context, accessID string) error
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	upstreamClient *upstream.Client,
	sessionManager sessionManager,
	identityService identity.Service,
	registrationService registration.Service,
	progressService progress.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadinessDeps(redisClient, upstreamClient)))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/session", controllers.SessionCreate(sessionManager, cfg.JWT, logg))
		r.Delete("/session", controllers.SessionRevoke(sessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1/registration", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

		r.Get("/identity", controllers.ResolveIdentity(identityService, logg))

		r.Get("/personal", controllers.GetPersonal(registrationService, logg))
		r.Post("/personal", controllers.SubmitPersonal(registrationService, logg))
		r.Post("/employment", controllers.SubmitEmployment(registrationService, logg))
		r.Post("/hostel", controllers.SubmitHostel(registrationService, logg))

		r.Get("/guardian", controllers.GetGuardian(identityService, registrationService, logg))
		r.Post("/guardian", controllers.SubmitGuardian(identityService, registrationService, logg))

		r.Get("/declaration", controllers.GetDeclaration(identityService, registrationService, logg))
		r.Post("/declaration", controllers.SubmitDeclaration(identityService, registrationService, logg))

		r.Get("/attachments", controllers.ListAttachments(identityService, registrationService, logg))
		r.Post("/attachments/{slot}", controllers.UploadAttachment(identityService, registrationService, logg))

		r.Get("/progress", controllers.GetProgress(progressService, logg))
	})

	return r
}
