package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/deep-coffee/internal/domain/entity"
	"github.com/yourusername/deep-coffee/internal/usecase"
)

type ContactHandler struct {
	contact   usecase.ContactUseCase
	delivered func(entity.ContactMessage)
	log       *logrus.Logger
}

// NewContactHandler delivered nil bo'lsa faqat log yoziladi
func NewContactHandler(contact usecase.ContactUseCase, delivered func(entity.ContactMessage), logger *logrus.Logger) *ContactHandler {
	if delivered == nil {
		delivered = func(m entity.ContactMessage) {
			logger.WithField("email", m.Email).Info("Contact message delivered")
		}
	}
	return &ContactHandler{contact: contact, delivered: delivered, log: logger}
}

func (h *ContactHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/contact", h.SendMessage)
}

func (h *ContactHandler) SendMessage(c *gin.Context) {
	var msg entity.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	// Yuborish so'rovdan keyin ham davom etadi
	err := h.contact.Send(c.Request.Context(), msg, h.delivered)
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		ValidationResponse(c, http.StatusUnprocessableEntity, verr.Result.Errors)
		return
	case err != nil:
		h.log.Errorf("Failed to send contact message: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "Failed to send message")
		return
	}

	SuccessResponse(c, http.StatusAccepted, "Mesajınız başarıyla gönderildi!", nil)
}
