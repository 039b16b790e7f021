package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/deppfellow/wedding-rsvp/internal/errs"
	"github.com/deppfellow/wedding-rsvp/internal/middleware"
	"github.com/labstack/echo/v4"
)

// Gateway is the envelope handler shared with the Lambda entry point.
type Gateway interface {
	Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)
	Respond(ctx context.Context, body []byte, base64Encoded bool) events.APIGatewayProxyResponse
}

// InvokeHandler emulates the API gateway in front of the function.
type InvokeHandler struct {
	gateway Gateway
}

func NewInvokeHandler(gateway Gateway) *InvokeHandler {
	return &InvokeHandler{gateway: gateway}
}

// Invoke treats the request body as the payload and writes the envelope
// as a plain HTTP response.
func (h *InvokeHandler) Invoke(c echo.Context) error {
	logger, done := operation(c, "invoke")
	defer done()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		logger.Error().Err(err).Msg("failed to read request body")
		return errs.NewBadArgumentError("unreadable request body")
	}

	resp := h.gateway.Respond(c.Request().Context(), body, false)

	for k, v := range resp.Headers {
		c.Response().Header().Set(k, v)
	}
	return c.Blob(resp.StatusCode, resp.Headers[echo.HeaderContentType], []byte(resp.Body))
}

// InvokeEvent accepts a full API Gateway proxy event and returns the raw
// proxy response, the way the Lambda runtime sees it.
func (h *InvokeHandler) InvokeEvent(c echo.Context) error {
	logger, done := operation(c, "invoke_event")
	defer done()

	var req events.APIGatewayProxyRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn().Err(err).Msg("failed to bind proxy event")
		return errs.NewBadArgumentError("malformed proxy event")
	}

	if req.RequestContext.RequestID == "" {
		req.RequestContext.RequestID = middleware.GetRequestID(c)
	}

	resp, err := h.gateway.Handle(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}
