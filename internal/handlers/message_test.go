package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dg-guptadaksh/commway/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stubGatewayService struct {
	message *model.CanonicalMessage
	err     error
}

func (s *stubGatewayService) Submit(ctx context.Context, params *model.CreateMessageParams) (*model.CanonicalMessage, error) {
	return s.message, s.err
}

func (s *stubGatewayService) Fetch(ctx context.Context, id model.MessageID) (*model.CanonicalMessage, error) {
	if s.message != nil && s.message.ID == id {
		return s.message, nil
	}
	return nil, model.ErrorMessageNotFound
}

const sendMessageBody = `{
	"sender_email": "alice@sender.com",
	"recipient_email": "bob@recipient.com",
	"intent_tag": "ACTION_REQUIRED",
	"subject": "Final review",
	"body_content": "Please confirm the totals."
}`

func performRequest(handler echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	server := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := server.NewContext(req, rec)
	if method == http.MethodGet && strings.HasPrefix(target, "/messages/") {
		c.SetParamNames("messageID")
		c.SetParamValues(strings.TrimPrefix(target, "/messages/"))
	}
	handler(c)
	return rec
}

func TestSendMessage(t *testing.T) {
	assert := assert.New(t)

	t.Run("success", func(t *testing.T) {
		service := &stubGatewayService{
			message: &model.CanonicalMessage{ID: model.MessageID("msg-1"), Status: model.StatusSent},
		}
		rec := performRequest(SendMessage(service), http.MethodPost, "/send-message/", sendMessageBody)

		assert.Equal(http.StatusOK, rec.Code)

		body := map[string]string{}
		assert.Nil(json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal("success", body["status"])
		assert.Equal("msg-1", body["message_id"])
		assert.Equal("Email sent successfully, status logged as SENT.", body["external_status"])
	})

	t.Run("validation failure is a 400 naming the value", func(t *testing.T) {
		service := &stubGatewayService{
			err: &model.ValidationError{Field: "intent_tag", Value: "URGENT", Reason: "not one of the defined intents"},
		}
		rec := performRequest(SendMessage(service), http.MethodPost, "/send-message/", sendMessageBody)

		assert.Equal(http.StatusBadRequest, rec.Code)
		assert.Contains(rec.Body.String(), "URGENT")
	})

	t.Run("dispatch failure is a 500 carrying the id", func(t *testing.T) {
		service := &stubGatewayService{
			message: &model.CanonicalMessage{ID: model.MessageID("msg-2"), Status: model.StatusFailed},
			err:     &model.DeliveryError{MessageID: model.MessageID("msg-2"), Err: context.DeadlineExceeded},
		}
		rec := performRequest(SendMessage(service), http.MethodPost, "/send-message/", sendMessageBody)

		assert.Equal(http.StatusInternalServerError, rec.Code)

		body := map[string]string{}
		assert.Nil(json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal("msg-2", body["message_id"])
		assert.Equal("Email failed to send. Status logged as FAILED.", body["detail"])
	})

	t.Run("persistence failure is a bare 500", func(t *testing.T) {
		service := &stubGatewayService{err: model.ErrorDuplicateMessage}
		rec := performRequest(SendMessage(service), http.MethodPost, "/send-message/", sendMessageBody)

		assert.Equal(http.StatusInternalServerError, rec.Code)
		assert.Contains(rec.Body.String(), "message logging failed")
	})
}

func TestGetMessage(t *testing.T) {
	assert := assert.New(t)

	service := &stubGatewayService{
		message: &model.CanonicalMessage{ID: model.MessageID("msg-1"), Status: model.StatusSent},
	}

	t.Run("found", func(t *testing.T) {
		rec := performRequest(GetMessage(service), http.MethodGet, "/messages/msg-1", "")
		assert.Equal(http.StatusOK, rec.Code)
		assert.Contains(rec.Body.String(), `"message_id":"msg-1"`)
	})

	t.Run("missing", func(t *testing.T) {
		rec := performRequest(GetMessage(service), http.MethodGet, "/messages/msg-9", "")
		assert.Equal(http.StatusNotFound, rec.Code)
	})
}

func TestHealth(t *testing.T) {
	assert := assert.New(t)

	rec := performRequest(Health("CommWay Gateway"), http.MethodGet, "/health/", "")
	assert.Equal(http.StatusOK, rec.Code)

	body := map[string]string{}
	assert.Nil(json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal("ok", body["status"])
	assert.Equal("CommWay Gateway", body["service"])
}
