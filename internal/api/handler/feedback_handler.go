package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stroyservice/intake-system/internal/api/metrics"
	"github.com/stroyservice/intake-system/internal/core/ports"
)

// FeedbackHandler handles HTTP requests for web order submissions.
type FeedbackHandler struct {
	service ports.IntakeService
}

func NewFeedbackHandler(service ports.IntakeService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// --- Request / Response types ---

type feedbackRequest struct {
	Name      string `json:"name"`
	Telephone string `json:"telephone" validate:"required,phone_ru"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

type feedbackResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Submit handles POST /feedback. Success is reported only after the order is
// persisted; notification fan-out is asynchronous and never affects the
// response.
func (h *FeedbackHandler) Submit(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		metrics.SubmissionsRejectedTotal.WithLabelValues("bad_payload").Inc()
		return c.JSON(http.StatusBadRequest, feedbackResponse{
			Status:  statusError,
			Message: "Некорректный JSON в запросе",
		})
	}

	req.Telephone = NormalizePhone(req.Telephone)
	if err := c.Validate(req); err != nil {
		metrics.SubmissionsRejectedTotal.WithLabelValues("bad_phone").Inc()
		return c.JSON(http.StatusBadRequest, feedbackResponse{
			Status:  statusError,
			Message: "Неверный формат телефона. Используйте +7 или 8 и 10 цифр",
		})
	}

	result, err := h.service.CreateOrder(c.Request().Context(), ports.CreateOrderInput{
		Name:      req.Name,
		Telephone: req.Telephone,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, feedbackResponse{
			Status:  statusError,
			Message: "Не удалось сохранить заявку",
		})
	}

	if result.Duplicate {
		metrics.SubmissionsDedupTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.SubmissionsDedupTotal.WithLabelValues("miss").Inc()
		metrics.OrdersCreatedTotal.Inc()
	}

	return c.JSON(http.StatusOK, feedbackResponse{Status: statusSuccess})
}
