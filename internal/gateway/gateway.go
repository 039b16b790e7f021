// Package gateway adapts API Gateway proxy events to the invitation api.
//
// Every request yields a response envelope; errors are folded into the
// envelope body and never returned to the Lambda runtime.
package gateway

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/deppfellow/wedding-rsvp/internal/errs"
	"github.com/deppfellow/wedding-rsvp/internal/logger"
	"github.com/deppfellow/wedding-rsvp/internal/model"
	"github.com/deppfellow/wedding-rsvp/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Headers sent with every response.
var Headers = map[string]string{
	"Content-Type":                "application/json",
	"Access-Control-Allow-Origin": "*",
}

// BodyHandler runs a raw payload against the invitation api.
type BodyHandler interface {
	HandleBody(ctx context.Context, body []byte) (model.Invitation, error)
}

type Handler struct {
	api    BodyHandler
	logger *zerolog.Logger
}

func NewHandler(api BodyHandler, logger *zerolog.Logger) *Handler {
	return &Handler{api: api, logger: logger}
}

type successBody struct {
	Data model.Invitation `json:"data"`
}

type errorBody struct {
	Err *errs.HTTPError `json:"err"`
}

// Handle is the Lambda entry point.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx = h.requestContext(ctx, req)
	return h.Respond(ctx, []byte(req.Body), req.IsBase64Encoded), nil
}

// Respond runs body through the api and builds the envelope. ctx should
// already carry a request logger.
func (h *Handler) Respond(ctx context.Context, body []byte, base64Encoded bool) events.APIGatewayProxyResponse {
	log := logger.FromContext(ctx)

	if base64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(string(body))
		if err != nil {
			return h.fail(ctx, errs.NewBadArgumentError("body is not valid base64"))
		}
		body = decoded
	}

	invitation, err := h.api.HandleBody(ctx, body)
	if err != nil {
		return h.fail(ctx, err)
	}

	log.Info().Int("status", http.StatusOK).Msg("request completed")
	return envelope(http.StatusOK, successBody{Data: invitation})
}

func (h *Handler) fail(ctx context.Context, err error) events.APIGatewayProxyResponse {
	httpErr := sqlerr.HandleError(err)

	event := logger.FromContext(ctx).Warn()
	if httpErr.Status >= http.StatusInternalServerError {
		event = logger.FromContext(ctx).Error()

		if txn := newrelic.FromContext(ctx); txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
		}
	}
	sqlerr.LogFields(event, err).
		Err(err).
		Int("status", httpErr.Status).
		Str("error_type", httpErr.ErrType).
		Msg("request failed")

	return envelope(httpErr.Status, errorBody{Err: httpErr})
}

func envelope(status int, body any) events.APIGatewayProxyResponse {
	encoded, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		encoded, _ = json.Marshal(errorBody{Err: errs.NewInternalServerError()})
	}

	headers := make(map[string]string, len(Headers))
	for k, v := range Headers {
		headers[k] = v
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(encoded),
	}
}

// requestContext attaches a logger carrying the request id and New Relic
// trace metadata.
func (h *Handler) requestContext(ctx context.Context, req events.APIGatewayProxyRequest) context.Context {
	log := h.logger.With().Str("request_id", RequestID(ctx, req)).Logger()

	if txn := newrelic.FromContext(ctx); txn != nil {
		log = logger.WithTraceContext(log, txn)
	}
	return logger.WithContext(ctx, log)
}

// RequestID prefers the Lambda invocation id, then the gateway request id,
// and generates one otherwise.
func RequestID(ctx context.Context, req events.APIGatewayProxyRequest) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	if req.RequestContext.RequestID != "" {
		return req.RequestContext.RequestID
	}
	return uuid.New().String()
}
