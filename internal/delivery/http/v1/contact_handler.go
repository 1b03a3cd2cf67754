package v1

import (
	"errors"
	"net/http"

	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	msgEmailsSent     = "Emails sent successfully"
	msgFieldsRequired = "All fields are required"
	msgSendFailed     = "Failed to send emails"
	msgInvalidBody    = "Invalid request body"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Emails the message to the site owner and sends the visitor an acknowledgement.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactRequest     true  "Contact Form Data"
// @Success      200      {object}  response.MessageResponse
// @Failure      400      {object}  response.ErrorResponse
// @Failure      500      {object}  response.ErrorResponse
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.BadRequest(msgInvalidBody, err))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			_ = c.Error(apperror.BadRequest(msgFieldsRequired, err))
			return
		}
		_ = c.Error(apperror.Internal(msgSendFailed, err))
		return
	}

	response.Success(c, http.StatusOK, msgEmailsSent)
}
