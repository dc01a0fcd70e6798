package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/dg-guptadaksh/commway/internal/model"
	"github.com/labstack/echo/v4"
)

type GatewayService interface {
	Submit(ctx context.Context, params *model.CreateMessageParams) (*model.CanonicalMessage, error)
	Fetch(ctx context.Context, id model.MessageID) (*model.CanonicalMessage, error)
}

type sendMessageResponse struct {
	Status         string          `json:"status"`
	MessageID      model.MessageID `json:"message_id"`
	ExternalStatus string          `json:"external_status"`
}

type errorResponse struct {
	Status    string          `json:"status"`
	MessageID model.MessageID `json:"message_id,omitempty"`
	Detail    string          `json:"detail"`
}

// SendMessage handles a structured message submission. The service decides
// the outcome; this is the only place errors are mapped to HTTP codes.
func SendMessage(gatewayService GatewayService) echo.HandlerFunc {
	return func(c echo.Context) error {
		params := &model.CreateMessageParams{}
		if err := c.Bind(params); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{
				Status: "error",
				Detail: "malformed request body",
			})
		}

		message, err := gatewayService.Submit(c.Request().Context(), params)
		if err != nil {
			var validationErr *model.ValidationError
			if errors.As(err, &validationErr) {
				return c.JSON(http.StatusBadRequest, errorResponse{
					Status: "error",
					Detail: validationErr.Error(),
				})
			}

			var deliveryErr *model.DeliveryError
			if errors.As(err, &deliveryErr) {
				return c.JSON(http.StatusInternalServerError, errorResponse{
					Status:    "error",
					MessageID: deliveryErr.MessageID,
					Detail:    "Email failed to send. Status logged as FAILED.",
				})
			}

			return c.JSON(http.StatusInternalServerError, errorResponse{
				Status: "error",
				Detail: "message logging failed",
			})
		}

		return c.JSON(http.StatusOK, sendMessageResponse{
			Status:         "success",
			MessageID:      message.ID,
			ExternalStatus: "Email sent successfully, status logged as SENT.",
		})
	}
}

// GetMessage returns the persisted record for a message ID.
func GetMessage(gatewayService GatewayService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := model.MessageID(c.Param("messageID"))
		message, err := gatewayService.Fetch(c.Request().Context(), id)
		if err != nil {
			if errors.Is(err, model.ErrorMessageNotFound) {
				return c.JSON(http.StatusNotFound, errorResponse{
					Status:    "error",
					MessageID: id,
					Detail:    "message not found",
				})
			}
			return c.JSON(http.StatusInternalServerError, errorResponse{
				Status:    "error",
				MessageID: id,
				Detail:    "fetching message failed",
			})
		}
		return c.JSON(http.StatusOK, message)
	}
}
