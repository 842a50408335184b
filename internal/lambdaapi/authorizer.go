package lambdaapi

import (
	"context"
	"log/slog"

	"tasklet/internal/auth"

	"github.com/aws/aws-lambda-go/events"
)

// AuthorizerHandler adapts the authorizer to the API Gateway custom
// authorizer contract: a token event in, an IAM policy document out.
type AuthorizerHandler struct {
	authorizer *auth.Authorizer
	logger     *slog.Logger
}

func NewAuthorizerHandler(authorizer *auth.Authorizer, logger *slog.Logger) *AuthorizerHandler {
	return &AuthorizerHandler{
		authorizer: authorizer,
		logger:     logger,
	}
}

// HandleRequest authorizes one gateway request. The decision grants or
// denies the single wildcard action (invoke the API) on the wildcard
// resource; there is no per-route granularity. Verification failures
// become deny policies, never handler errors, so the gateway always
// receives a usable decision.
func (h *AuthorizerHandler) HandleRequest(ctx context.Context, event events.APIGatewayCustomAuthorizerRequest) (events.APIGatewayCustomAuthorizerResponse, error) {
	decision := h.authorizer.Authorize(ctx, event.AuthorizationToken)

	effect := "Deny"
	if decision.Allowed {
		effect = "Allow"
	}

	return events.APIGatewayCustomAuthorizerResponse{
		PrincipalID:    decision.Principal,
		PolicyDocument: invokePolicy(effect),
	}, nil
}

func invokePolicy(effect string) events.APIGatewayCustomAuthorizerPolicy {
	return events.APIGatewayCustomAuthorizerPolicy{
		Version: "2012-10-17",
		Statement: []events.IAMPolicyStatement{{
			Action:   []string{"execute-api:Invoke"},
			Effect:   effect,
			Resource: []string{"*"},
		}},
	}
}
