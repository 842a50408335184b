package lambdaapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"tasklet/internal/domain"

	"github.com/aws/aws-lambda-go/events"
)

// corsHeaders are attached to every response; the functions sit behind
// an API Gateway that proxies browser clients directly.
func corsHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                     "application/json",
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Credentials": "true",
	}
}

// respond serializes body as the JSON payload of a proxy response.
func respond(status int, body interface{}) events.APIGatewayProxyResponse {
	if body == nil {
		return events.APIGatewayProxyResponse{
			StatusCode: status,
			Headers:    corsHeaders(),
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return respondError(http.StatusInternalServerError, "failed to encode response")
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders(),
		Body:       string(payload),
	}
}

func respondError(status int, detail string) events.APIGatewayProxyResponse {
	payload, _ := json.Marshal(map[string]string{"error": detail})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    corsHeaders(),
		Body:       string(payload),
	}
}

// respondDomainError maps domain errors to proxy responses the same
// way the HTTP handlers do.
func respondDomainError(err error) events.APIGatewayProxyResponse {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return respondError(http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return respondError(http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return respondError(http.StatusUnauthorized, err.Error())
	default:
		return respondError(http.StatusInternalServerError, "internal server error")
	}
}
