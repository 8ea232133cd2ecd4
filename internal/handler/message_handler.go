package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "techcorp/internal/errors"
	"techcorp/internal/service"
)

// MessageHandler handles the public contact form and the message inbox.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// ContactForm represents a contact form submission.
type ContactForm struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Subject string `form:"subject" json:"subject"`
	Message string `form:"message" json:"message"`
}

// StatusUpdateRequest represents an inbox status change.
type StatusUpdateRequest struct {
	Status string `form:"status" json:"status" validate:"required"`
}

// ContactPage echoes the contact form flash codes.
func (h *MessageHandler) ContactPage(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"title":   "Contact Us - TechCorp Solutions",
		"success": c.QueryParam("success"),
		"error":   c.QueryParam("error"),
	})
}

// SubmitContact stores a contact form submission and redirects with the
// ticket reference on success.
func (h *MessageHandler) SubmitContact(c echo.Context) error {
	var form ContactForm
	if err := c.Bind(&form); err != nil {
		return contactRedirect(c, "error", "Name, email, and message are required")
	}

	msg, err := h.messageService.Submit(c.Request().Context(), form.Name, form.Email, form.Subject, form.Message)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return contactRedirect(c, "error", validationMessage(err))
		}
		c.Logger().Errorf("contact submit: %v", err)
		return contactRedirect(c, "error", "Failed to send message. Please try again.")
	}

	target := "/contact?success=" + url.QueryEscape("Thank you for your message! We will get back to you soon.") +
		"&ref=" + msg.Reference.String()
	return c.Redirect(http.StatusFound, target)
}

// ListMessages returns the inbox, newest first.
func (h *MessageHandler) ListMessages(c echo.Context) error {
	msgs, err := h.messageService.List(c.Request().Context())
	if err != nil {
		return dbError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":    "Contact Messages - TechCorp Solutions",
		"messages": msgs,
	})
}

// GetMessage returns a single message, marking new messages read.
func (h *MessageHandler) GetMessage(c echo.Context) error {
	id, err := messageID(c)
	if err != nil {
		return err
	}

	msg, err := h.messageService.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrMessageNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "message not found")
		}
		return dbError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"title":   "Message Details - TechCorp Solutions",
		"message": msg,
	})
}

// UpdateMessageStatus changes a message's status. API-facing: JSON in, JSON out.
func (h *MessageHandler) UpdateMessageStatus(c echo.Context) error {
	id, err := messageID(c)
	if err != nil {
		return err
	}

	var req StatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.messageService.UpdateStatus(c.Request().Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidStatus):
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.MapErrorToHTTP(err).ToErrorResponse())
		case errors.Is(err, apperrors.ErrMessageNotFound):
			return echo.NewHTTPError(http.StatusNotFound, apperrors.MapErrorToHTTP(err).ToErrorResponse())
		}
		return dbError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Status updated successfully",
	})
}

func messageID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

func contactRedirect(c echo.Context, key, message string) error {
	return c.Redirect(http.StatusFound, "/contact?"+key+"="+url.QueryEscape(message))
}

// validationMessage strips the sentinel prefix from a wrapped validation
// error, leaving the human-readable part.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := apperrors.ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
