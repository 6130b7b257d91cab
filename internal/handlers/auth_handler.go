package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/httpresp"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
	ucAccount "github.com/BruksfildServices01/barbershop-booking/internal/usecase/account"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

type AuthHandler struct {
	auth       *ucAccount.Auth
	onboarding *ucAccount.Onboarding
	emails     *validators.EmailDomainChecker
	log        *zerolog.Logger
}

// NewAuthHandler takes an optional domain checker for signups.
func NewAuthHandler(
	auth *ucAccount.Auth,
	onboarding *ucAccount.Onboarding,
	emails *validators.EmailDomainChecker,
	log *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{auth: auth, onboarding: onboarding, emails: emails, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type SignupRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type TokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetConfirmRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AcceptInviteRequest struct {
	Token     string `json:"token" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name"`
}

// --------- Session ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, account.ErrTooManyAttempts) {
		httperr.TooManyRequests(c, account.ErrTooManyAttempts.Code, account.ErrTooManyAttempts.Message)
		return
	}
	if errors.Is(err, account.ErrInvalidCredentials) {
		httperr.Unauthorized(c, account.ErrInvalidCredentials.Code, account.ErrInvalidCredentials.Message)
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err, "login_failed")
		return
	}

	c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	pair, err := h.auth.Refresh(c.Request.Context(), req.Refresh)
	if errors.Is(err, account.ErrInvalidToken) {
		httperr.Unauthorized(c, account.ErrInvalidToken.Code, account.ErrInvalidToken.Message)
		return
	}
	if err != nil {
		httperr.Respond(c, h.log, err, "refresh_failed")
		return
	}

	c.JSON(http.StatusOK, pair)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.Refresh); err != nil {
		httperr.Respond(c, h.log, err, "logout_failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// --------- Accounts ---------

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !bindJSON(c, &req) {
		return
	}

	if h.emails != nil && !h.emails.Valid(c.Request.Context(), req.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not look valid.")
		return
	}

	u, err := h.onboarding.SignupClient(c.Request.Context(), ucAccount.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "signup_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":     u.ID,
		"email":  u.Email,
		"detail": "Check your email to activate the account.",
	})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req TokenRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.onboarding.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		httperr.Respond(c, h.log, err, "verify_email_failed")
		return
	}
	httpresp.Detail(c, http.StatusOK, "Email verified.")
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req EmailRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.auth.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		h.log.Error().Err(err).Msg("password reset request failed")
	}
	httpresp.Detail(c, http.StatusOK, "If the email is registered, a reset link was sent.")
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req ResetConfirmRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.auth.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		httperr.Respond(c, h.log, err, "password_reset_failed")
		return
	}
	httpresp.Detail(c, http.StatusOK, "Password updated.")
}

// --------- Barber onboarding ---------

// POST admin/barbers/invite
func (h *AuthHandler) InviteBarber(c *gin.Context) {
	var req EmailRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.onboarding.InviteBarber(c.Request.Context(), middleware.UserID(c), req.Email); err != nil {
		httperr.Respond(c, h.log, err, "invite_barber_failed")
		return
	}
	httpresp.Detail(c, http.StatusCreated, "Invitation sent.")
}

func (h *AuthHandler) AcceptInvite(c *gin.Context) {
	var req AcceptInviteRequest
	if !bindJSON(c, &req) {
		return
	}

	u, err := h.onboarding.AcceptInvite(c.Request.Context(), ucAccount.AcceptInviteInput{
		Token:     req.Token,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		httperr.Respond(c, h.log, err, "accept_invite_failed")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": u.ID, "email": u.Email})
}
