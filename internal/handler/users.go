package handler

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lottoops/unclaimed-tracker/backend/internal/domain"
	"github.com/lottoops/unclaimed-tracker/backend/internal/repository"
	"github.com/lottoops/unclaimed-tracker/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllUserInfo(w http.ResponseWriter, r *http.Request) {
	users, err := h.repository.GetAllUsers(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "users loaded", users)
}

// userConstraintError maps unique violations on users to a client message.
func (h *Handler) userConstraintError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr):
		switch pgErr.ConstraintName {
		case "users_username_key":
			h.badRequest(w, r, errors.New("username is already taken"))
		case "users_email_key":
			h.badRequest(w, r, errors.New("email is already taken"))
		default:
			h.internalServerError(w, r, err)
		}
	case errors.Is(err, repository.ErrEditConflict):
		h.errorResponse(w, r, "user was changed by someone else, please try again")
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username  string  `json:"username" validate:"required,alphanum,min=3,max=32"`
		FullName  string  `json:"fullname" validate:"required"`
		Email     string  `json:"email" validate:"omitempty,email"`
		Role      string  `json:"role" validate:"required,role"`
		Area      *string `json:"area"`
		Franchise *string `json:"franchise_name"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	password := utils.GenerateRandomPassword(h.config.NewUser.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         domain.NormalizeRole(req.Role),
		Status:       domain.UserStatusActive,
		Area:         req.Area,
		Franchise:    req.Franchise,
	}

	if err := h.repository.CreateUser(r.Context(), user); err != nil {
		h.userConstraintError(w, r, err)
		return
	}

	// without an email the administrator hands the password over in person
	if user.Email == "" {
		h.successResponse(w, r, "user created", map[string]any{"user": user, "password": password})
		return
	}

	mailMessage := domain.MailMessage{
		Type: domain.MailTypeCreateUser,
		To:   user.Email,
		Data: domain.CreateUserMailData{
			FullName: req.FullName,
			Username: req.Username,
			Password: password,
		},
	}

	if err := h.mailer.Publish(r.Context(), mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "user created", user)
}

func (h *Handler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)
	h.successResponse(w, r, "user loaded", user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName  *string `json:"fullname" validate:"omitempty,min=1"`
		Email     *string `json:"email" validate:"omitempty,email"`
		Role      *string `json:"role" validate:"omitempty,role"`
		Status    *string `json:"status" validate:"omitempty,user_status"`
		Area      *string `json:"area"`
		Franchise *string `json:"franchise_name"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = domain.NormalizeRole(*req.Role)
	}
	if req.Status != nil {
		user.Status = domain.UserStatus(*req.Status)
	}
	if req.Area != nil {
		user.Area = req.Area
	}
	if req.Franchise != nil {
		user.Franchise = req.Franchise
	}

	if err := h.repository.UpdateUser(r.Context(), user); err != nil {
		h.userConstraintError(w, r, err)
		return
	}

	h.successResponse(w, r, "user updated", user)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if user.ID == currentUser(r).ID {
		h.errorResponse(w, r, "you cannot delete your own account")
		return
	}

	if err := h.repository.DeleteUser(r.Context(), user.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			h.errorResponse(w, r, "user has recorded collections or reports, suspend the account instead")
			return
		}
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "user deleted", nil)
}

func (h *Handler) UpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	var req struct {
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user.PasswordHash = string(hashedPassword)
	if err := h.repository.UpdateUser(r.Context(), user); err != nil {
		h.userConstraintError(w, r, err)
		return
	}

	h.successResponse(w, r, "password changed", nil)
}
