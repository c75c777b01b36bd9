package handler

import (
	"context"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/lottoops/unclaimed-tracker/backend/internal/config"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/feed"
	"github.com/lottoops/unclaimed-tracker/backend/internal/pending"
	"github.com/lottoops/unclaimed-tracker/backend/internal/repository"
	"github.com/lottoops/unclaimed-tracker/backend/internal/utils"
	"github.com/redis/go-redis/v9"
)

// PendingService is the merged pending view, implemented by *pending.Aggregator.
type PendingService interface {
	FetchPendingFromAllSources(ctx context.Context, filter domain.PendingFilter) (*pending.Result, error)
	AddPendingRecord(ctx context.Context, row feed.Row) error
	DeletePendingRecord(ctx context.Context, transCode string) error
}

type MailPublisher interface {
	Publish(ctx context.Context, msg domain.MailMessage) error
}

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	mailer      MailPublisher
	redisClient *redis.Client
	pending     PendingService

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, mailer MailPublisher, rdb *redis.Client, pendingSvc PendingService) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}
	if err := utils.RegisterValidations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		mailer:      mailer,
		redisClient: rdb,
		pending:     pendingSvc,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	// everything below needs a valid session of an active user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.myInfo)

		r.Route("/my-info", func(r chi.Router) {
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(h.RequiredPermission(domain.PermCreateUser)).Post("/", h.CreateUser)
			r.With(h.RequiredPermission(domain.PermViewUsers)).Get("/", h.GetAllUserInfo)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.userInfo)
				r.With(h.RequiredPermission(domain.PermViewUsers)).Get("/", h.GetUserInfo)
				r.With(h.RequiredPermission(domain.PermUpdateUser), h.preventOperateInitialAdmin).Patch("/", h.UpdateUser)
				r.With(h.RequiredPermission(domain.PermDeleteUser), h.preventOperateInitialAdmin).Delete("/", h.DeleteUser)
				r.With(h.RequiredPermission(domain.PermUpdateUser)).Patch("/password", h.UpdateUserPassword)
			})
		})

		r.Route("/unclaimed", func(r chi.Router) {
			r.With(h.RequiredPermission(domain.PermViewUnclaimed)).Get("/", h.GetAllUnclaimed)
			r.With(h.RequiredPermission(domain.PermCreateUnclaimed)).Post("/", h.CreateUnclaimed)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.unclaimedRecord)
				r.With(h.RequiredPermission(domain.PermViewUnclaimed)).Get("/", h.GetUnclaimed)
				r.With(h.RequiredAction(domain.PermUpdateUnclaimed)).Patch("/", h.UpdateUnclaimed)
				r.With(h.RequiredPermission(domain.PermDeleteUnclaimed)).Delete("/", h.DeleteUnclaimed)
				r.With(h.RequiredAction(domain.PermMarkCollected)).Post("/collect", h.MarkCollected)
				r.With(h.RequiredAction(domain.PermMarkCollected)).Post("/deposit", h.DepositUnclaimed)
				r.With(h.RequiredAction(domain.PermUpdateUnclaimed)).Post("/verify", h.VerifyUnclaimed)
			})
		})

		r.Route("/pending", func(r chi.Router) {
			r.With(h.RequiredPermission(domain.PermViewUnclaimed)).Get("/", h.GetPending)
			r.With(h.RequiredPermission(domain.PermViewUnclaimed)).Get("/overdue", h.GetMostOverdue)
			r.With(h.RequiredPermission(domain.PermCreateUnclaimed)).Post("/feed", h.AddFeedRecord)
			r.With(h.RequiredPermission(domain.PermDeleteUnclaimed)).Delete("/feed/{transCode}", h.DeleteFeedRecord)
		})

		r.Route("/collections", func(r chi.Router) {
			r.With(h.RequiredPermission(domain.PermViewReports)).Get("/", h.GetAllCollections)
			r.With(h.RequiredPermission(domain.PermMarkCollected)).Post("/", h.CreateCollection)
		})

		r.Route("/reports", func(r chi.Router) {
			r.With(h.RequiredPermission(domain.PermViewReports)).Get("/", h.GetAllReports)
			r.With(h.RequiredPermission(domain.PermExportReports)).Post("/", h.GenerateReport)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.reportInfo)
				r.With(h.RequiredPermission(domain.PermViewReports)).Get("/", h.GetReport)
				r.With(h.RequiredPermission(domain.PermExportReports)).Get("/export", h.ExportReport)
				r.With(h.RequiredPermission(domain.PermExportReports)).Delete("/", h.DeleteReport)
			})
		})

		r.Route("/areas", func(r chi.Router) {
			r.Get("/", h.GetAllAreas)
			r.With(h.RequiredPermission(domain.PermUpdateUser)).Post("/", h.CreateArea)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(h.areaInfo)
				r.With(h.RequiredPermission(domain.PermUpdateUser)).Patch("/", h.UpdateArea)
				r.With(h.RequiredPermission(domain.PermUpdateUser)).Delete("/", h.DeleteArea)
			})
		})

		r.With(h.RequiredPermission(domain.PermViewUnclaimed)).Get("/dashboard", h.GetDashboard)
	})
}
