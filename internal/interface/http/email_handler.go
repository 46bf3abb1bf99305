package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/storefront-api/config"
	"github.com/oksasatya/storefront-api/internal/application"
	"github.com/oksasatya/storefront-api/pkg/mailer"
	"github.com/oksasatya/storefront-api/pkg/mailer/templates"
	"github.com/oksasatya/storefront-api/pkg/response"
	"github.com/oksasatya/storefront-api/pkg/validation"
)

type EmailHandler struct {
	Pub    application.Publisher
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewEmailHandler(pub application.Publisher, logger *logrus.Logger, cfg *config.Config) *EmailHandler {
	return &EmailHandler{Pub: pub, Logger: logger, Cfg: cfg}
}

type sendEmailRequest struct {
	To       string         `json:"to" binding:"required,email"`
	Template string         `json:"template" binding:"omitempty,oneof=welcome order_receipt"`
	Data     map[string]any `json:"data"`
	Subject  string         `json:"subject"` // required without template
	Text     string         `json:"text"`
	HTML     string         `json:"html"`
}

// Send POST /api/admin/emails enqueues a customer email (admin).
func (h *EmailHandler) Send(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.Template == "" && (req.Subject == "" || (req.Text == "" && req.HTML == "")) {
		response.Error[any](c, http.StatusBadRequest, "either template or subject with text/html is required", nil)
		return
	}

	if h.Cfg != nil && !h.Cfg.MailSendEnabled {
		response.Success[any](c, http.StatusAccepted, gin.H{"enqueued": false, "disabled": true}, "email sending disabled", nil)
		return
	}
	if h.Pub == nil {
		response.Error[any](c, http.StatusServiceUnavailable, "email queue not configured", nil)
		return
	}

	job := mailer.EmailJob{To: req.To}
	if req.Template != "" {
		job.Template = req.Template
		job.Data = req.Data
		if job.Data == nil {
			job.Data = templates.ToMap(templates.NewBaseEmailData(h.Cfg, req.Template, "", req.To))
		}
	} else {
		job.Subject = req.Subject
		job.Text = req.Text
		job.HTML = req.HTML
	}
	if err := h.Pub.PublishJSON(c.Request.Context(), job); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("template", req.Template).Warn("failed to publish email job")
		}
		response.Error[any](c, http.StatusServiceUnavailable, "failed to enqueue", nil)
		return
	}
	response.Success[any](c, http.StatusAccepted, gin.H{"enqueued": true}, "email enqueued", nil)
}
