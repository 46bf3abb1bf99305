package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/internal/domain/entity"
	"github.com/oksasatya/storefront-api/internal/domain/errs"
	"github.com/oksasatya/storefront-api/internal/interface/middleware"
	"github.com/oksasatya/storefront-api/pkg/helpers"
	"github.com/oksasatya/storefront-api/pkg/response"
	"github.com/oksasatya/storefront-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookies *helpers.Manager) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) bindRegister(c *gin.Context) (application.RegisterInput, bool) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return application.RegisterInput{}, false
	}
	role, ok := entity.ParseRole(req.Role)
	if !ok {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"role": "must be one of: standard, admin"})
		return application.RegisterInput{}, false
	}
	return application.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password, Role: role}, true
}

// Register POST /api/auth/register
// role=admin is only honored when the caller already holds an admin session.
func (h *AuthHandler) Register(c *gin.Context) {
	in, ok := h.bindRegister(c)
	if !ok {
		return
	}
	if in.Role == entity.RoleAdmin {
		id, authed := middleware.IdentityFrom(c)
		if !authed || !id.HasRole(entity.RoleAdmin) {
			response.Error[any](c, http.StatusForbidden, errs.ErrAccessDenied.Error(), map[string]string{"role": "admin accounts require an admin session"})
			return
		}
	}

	a, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	sess, err := h.Svc.IssueSession(a)
	if err != nil {
		fail(c, err)
		return
	}
	// an admin provisioning someone else keeps their own cookie
	if _, authed := middleware.IdentityFrom(c); !authed {
		h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	}
	response.Success(c, http.StatusCreated, gin.H{"user": userFromAccount(a), "token": sess.Token}, "account created", gin.H{"expires_at": sess.ExpiresAt})
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	a, sess, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		failLogin(c, err)
		return
	}
	h.Cookies.SetSession(c, sess.Token, sess.ExpiresAt)
	response.Success(c, http.StatusOK, gin.H{"user": userFromAccount(a), "token": sess.Token}, "login successful", gin.H{"expires_at": sess.ExpiresAt})
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), middleware.TokenFromRequest(c)); err != nil && h.Logger != nil {
		h.Logger.WithError(err).Warn("session revoke failed")
	}
	h.Cookies.Clear(c)
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "logged out", nil)
}

// Profile GET /api/auth/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		fail(c, errs.ErrMissingToken)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": userFromIdentity(id)}, "profile", gin.H{"expires_at": id.ExpiresAt})
}

// CreateAccount POST /api/admin/accounts
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	in, ok := h.bindRegister(c)
	if !ok {
		return
	}
	a, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": userFromAccount(a)}, "account created", nil)
}
