// Package gateway serves the Todo API from AWS Lambda behind an API Gateway
// HTTP API (payload format 2.0).
package gateway

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/jacentio/todos/handler"
	"github.com/jacentio/todos/internal/wire"
)

// Handler adapts API Gateway proxy events onto a handler.Handler.
type Handler struct {
	handler *handler.Handler
	logger  *slog.Logger
}

// NewHandler creates a new gateway handler.
func NewHandler(h *handler.Handler, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		handler: h,
		logger:  logger,
	}
}

// Handle processes one API Gateway request.
// This function is designed to be used as an AWS Lambda handler. It never
// returns an error: every outcome is an HTTP response, so API Gateway never
// sees an invocation failure for a bad request.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := req.RequestContext.HTTP.Method
	path := requestPath(req)

	res := h.route(ctx, method, path, req)

	h.logger.InfoContext(ctx, "request",
		"method", method,
		"path", path,
		"status", res.StatusCode,
		"requestID", req.RequestContext.RequestID,
	)

	return toEvent(res), nil
}

// route dispatches on method and path the same way the HTTP router does.
func (h *Handler) route(ctx context.Context, method, path string, req events.APIGatewayV2HTTPRequest) wire.Response {
	if method == http.MethodOptions {
		return wire.Response{StatusCode: http.StatusNoContent}
	}

	if path == "/healthz" {
		if method != http.MethodGet {
			return methodNotAllowed()
		}
		return wire.EncodeHealth(nil)
	}

	rest, ok := cutCollection(path)
	if !ok {
		return notFound()
	}

	// Collection: /api/todos
	if rest == "" {
		switch method {
		case http.MethodGet:
			return wire.Encode(h.handler.List(ctx))
		case http.MethodPost:
			body, err := decodeBody(req)
			if err != nil {
				return wire.EncodeBadBody(err)
			}
			return wire.Encode(h.handler.Create(ctx, body.Fields()))
		default:
			return methodNotAllowed()
		}
	}

	// Item: /api/todos/{id}
	if strings.Contains(rest, "/") {
		return notFound()
	}
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodDelete:
	default:
		return methodNotAllowed()
	}

	id, ok := wire.ParseID(rest)
	if !ok {
		return notFound()
	}

	switch method {
	case http.MethodGet:
		return wire.Encode(h.handler.Get(ctx, id))
	case http.MethodPut:
		body, err := decodeBody(req)
		if err != nil {
			return wire.EncodeBadBody(err)
		}
		return wire.Encode(h.handler.Replace(ctx, id, body.Fields()))
	default:
		return wire.Encode(h.handler.Delete(ctx, id))
	}
}

// requestPath returns the request path with any trailing slash removed.
func requestPath(req events.APIGatewayV2HTTPRequest) string {
	path := req.RawPath
	if path == "" {
		path = req.RequestContext.HTTP.Path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

// cutCollection strips the collection prefix, returning what follows it
// (without the separating slash).
func cutCollection(path string) (string, bool) {
	if path == wire.CollectionPath {
		return "", true
	}
	rest, ok := strings.CutPrefix(path, wire.CollectionPath+"/")
	if !ok || rest == "" {
		return "", false
	}
	return rest, true
}

// decodeBody decodes the event body, undoing API Gateway's base64 wrapping.
func decodeBody(req events.APIGatewayV2HTTPRequest) (wire.Request, error) {
	body := req.Body
	if req.IsBase64Encoded {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return wire.Request{}, err
		}
		body = string(raw)
	}
	return wire.DecodeRequest(strings.NewReader(body))
}

// toEvent converts an encoded response into an API Gateway response.
func toEvent(res wire.Response) events.APIGatewayV2HTTPResponse {
	headers := map[string]string{
		"Access-Control-Allow-Origin": "*",
	}
	if res.ContentType != "" {
		headers["Content-Type"] = res.ContentType
	}
	if res.Location != "" {
		headers["Location"] = res.Location
	}
	return events.APIGatewayV2HTTPResponse{
		StatusCode: res.StatusCode,
		Headers:    headers,
		Body:       string(res.Body),
	}
}

func notFound() wire.Response {
	return wire.EncodeProblem(http.StatusNotFound, "Not Found", nil)
}

func methodNotAllowed() wire.Response {
	return wire.EncodeProblem(http.StatusMethodNotAllowed, "Method Not Allowed", nil)
}
