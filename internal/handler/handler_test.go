package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	body []byte
	req  events.APIGatewayProxyRequest
	resp events.APIGatewayProxyResponse
}

func (f *fakeGateway) Handle(_ context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	f.req = req
	return f.resp, nil
}

func (f *fakeGateway) Respond(_ context.Context, body []byte, _ bool) events.APIGatewayProxyResponse {
	f.body = body
	return f.resp
}

var notFoundResp = events.APIGatewayProxyResponse{
	StatusCode: http.StatusBadRequest,
	Headers: map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": "*",
	},
	Body: `{"err":{"msg":"Item with id x, could not be found","errType":"ITEM_NOT_FOUND"}}`,
}

func TestInvokeHandler_Invoke(t *testing.T) {
	gw := &fakeGateway{resp: notFoundResp}
	h := NewInvokeHandler(gw)

	payload := `{"function":"fetchInvitation","params":{"id":"x"}}`
	req := httptest.NewRequest(http.MethodPost, "/invoke", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.Invoke(c))

	assert.Equal(t, payload, string(gw.body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, notFoundResp.Body, rec.Body.String())
}

func TestInvokeHandler_InvokeEvent(t *testing.T) {
	gw := &fakeGateway{resp: notFoundResp}
	h := NewInvokeHandler(gw)

	event := `{"body":"{\"function\":\"fetchInvitation\",\"params\":{\"id\":\"x\"}}","requestContext":{"requestId":"evt-1"}}`
	req := httptest.NewRequest(http.MethodPost, "/invoke/event", strings.NewReader(event))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	require.NoError(t, h.InvokeEvent(c))

	assert.Equal(t, "evt-1", gw.req.RequestContext.RequestID)
	assert.Equal(t, `{"function":"fetchInvitation","params":{"id":"x"}}`, gw.req.Body)

	var resp events.APIGatewayProxyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, notFoundResp.Body, resp.Body)
}

func TestHealthHandler_CheckHealth(t *testing.T) {
	tt := []struct {
		name     string
		db       pingFunc
		redis    pingFunc
		status   int
		overall  string
		hasRedis bool
	}{
		{
			name:    "database up",
			db:      func(context.Context) error { return nil },
			status:  http.StatusOK,
			overall: "healthy",
		},
		{
			name:    "database down",
			db:      func(context.Context) error { return errors.New("connection refused") },
			status:  http.StatusServiceUnavailable,
			overall: "unhealthy",
		},
		{
			name:     "redis down is reported only",
			db:       func(context.Context) error { return nil },
			redis:    func(context.Context) error { return errors.New("redis: nil") },
			status:   http.StatusOK,
			overall:  "healthy",
			hasRedis: true,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			h := &HealthHandler{env: "local", db: tc.db, redis: tc.redis}

			req := httptest.NewRequest(http.MethodGet, "/status", nil)
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			require.NoError(t, h.CheckHealth(c))
			assert.Equal(t, tc.status, rec.Code)

			var resp healthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.overall, resp.Status)
			assert.Equal(t, "local", resp.Environment)
			assert.Contains(t, resp.Checks, "database")

			redisCheck, ok := resp.Checks["redis"]
			assert.Equal(t, tc.hasRedis, ok)
			if ok {
				assert.Equal(t, "unhealthy", redisCheck.Status)
			}
		})
	}
}
