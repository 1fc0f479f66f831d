package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/aidanlogic/aidanlogic/internal/api/constants"
	"github.com/aidanlogic/aidanlogic/internal/api/dto/v1/contact"
	"github.com/aidanlogic/aidanlogic/internal/service"
	"github.com/aidanlogic/aidanlogic/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContactSubmitter is the part of the contact service the handler needs
type ContactSubmitter interface {
	Submit(ctx context.Context, sub service.ContactSubmission) error
}

type ContactHandler struct {
	contactService ContactSubmitter
}

func NewContactHandler(contactService ContactSubmitter) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	// Get contact data from context (set by validation middleware)
	contactData, exists := c.Get(constants.ContextKeyContact)
	if !exists {
		utils.HandleAPIError(c, errors.New("contact data not found in context"), http.StatusInternalServerError, service.MessageInternalError)
		return
	}

	contactPtr, ok := contactData.(*contact.ContactRequest)
	if !ok {
		utils.HandleAPIError(c, errors.New("invalid contact data format"), http.StatusInternalServerError, service.MessageInternalError)
		return
	}

	err := h.contactService.Submit(c.Request.Context(), contactPtr.ToSubmission(utils.GetRealIP(c)))

	result := service.ResultFor(err)
	if !result.Success {
		utils.HandleAPIError(c, err, result.Status, result.Message)
		return
	}

	utils.HandleSuccess(c, contact.ContactResponse{
		Success: true,
		Message: result.Message,
	})
}
