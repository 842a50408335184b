package lambdaapi

import (
	"context"
	"testing"

	"tasklet/internal/auth"
	"tasklet/internal/domain"
	"tasklet/internal/domain/models"

	"github.com/aws/aws-lambda-go/events"
	"github.com/golang-jwt/jwt/v5"
)

type stubVerifier struct {
	claims *models.TokenClaims
	err    error
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (*models.TokenClaims, error) {
	return s.claims, s.err
}

func subjectClaims(sub string) *models.TokenClaims {
	return &models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
	}
}

func TestHandleRequestAllow(t *testing.T) {
	verifier := &stubVerifier{claims: subjectClaims("auth0|u1")}
	h := NewAuthorizerHandler(auth.NewAuthorizer(verifier, testLogger()), testLogger())

	resp, err := h.HandleRequest(context.Background(), events.APIGatewayCustomAuthorizerRequest{
		Type:               "TOKEN",
		AuthorizationToken: "Bearer token",
	})
	if err != nil {
		t.Fatalf("HandleRequest returned error: %v", err)
	}

	if resp.PrincipalID != "auth0|u1" {
		t.Errorf("principal = %q, want auth0|u1", resp.PrincipalID)
	}
	assertInvokePolicy(t, resp.PolicyDocument, "Allow")
}

func TestHandleRequestDeny(t *testing.T) {
	tests := []struct {
		name  string
		token string
		err   error
	}{
		{name: "no token", token: ""},
		{name: "bad signature", token: "Bearer token", err: domain.ErrInvalidSignature},
		{name: "key set down", token: "Bearer token", err: domain.ErrKeySetUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{err: tt.err}
			h := NewAuthorizerHandler(auth.NewAuthorizer(verifier, testLogger()), testLogger())

			resp, err := h.HandleRequest(context.Background(), events.APIGatewayCustomAuthorizerRequest{
				Type:               "TOKEN",
				AuthorizationToken: tt.token,
			})
			if err != nil {
				t.Fatalf("HandleRequest returned error: %v", err)
			}

			if resp.PrincipalID != auth.DeniedPrincipal {
				t.Errorf("principal = %q, want %q", resp.PrincipalID, auth.DeniedPrincipal)
			}
			assertInvokePolicy(t, resp.PolicyDocument, "Deny")
		})
	}
}

func assertInvokePolicy(t *testing.T, policy events.APIGatewayCustomAuthorizerPolicy, effect string) {
	t.Helper()

	if policy.Version != "2012-10-17" {
		t.Errorf("policy version = %q, want 2012-10-17", policy.Version)
	}
	if len(policy.Statement) != 1 {
		t.Fatalf("statements = %d, want 1", len(policy.Statement))
	}

	stmt := policy.Statement[0]
	if stmt.Effect != effect {
		t.Errorf("effect = %q, want %q", stmt.Effect, effect)
	}
	if len(stmt.Action) != 1 || stmt.Action[0] != "execute-api:Invoke" {
		t.Errorf("action = %v, want execute-api:Invoke", stmt.Action)
	}
	if len(stmt.Resource) != 1 || stmt.Resource[0] != "*" {
		t.Errorf("resource = %v, want wildcard", stmt.Resource)
	}
}
