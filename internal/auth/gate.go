package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dreamteam-fund/dreamteam/internal/policy"
	"github.com/dreamteam-fund/dreamteam/internal/shared"
)

const basicChallenge = `Basic realm="Restricted Area"`

// Gate is the orchestrating middleware: it sequences credential
// verification, identity resolution and policy evaluation for every inbound
// request, short-circuiting with a terminal response on any rejection. The
// downstream handler never runs on a rejected request.
type Gate struct {
	verifier *Verifier
	resolver *Resolver
	engine   *policy.Engine
	logger   *slog.Logger
	onReject func(code string)
}

// NewGate constructs a Gate.
func NewGate(verifier *Verifier, resolver *Resolver, engine *policy.Engine, logger *slog.Logger) *Gate {
	return &Gate{verifier: verifier, resolver: resolver, engine: engine, logger: logger}
}

// OnReject registers a hook invoked with the machine code of every
// rejection the gate emits. Used to feed the rejection counter.
func (g *Gate) OnReject(fn func(code string)) {
	g.onReject = fn
}

func (g *Gate) countReject(code string) {
	if g.onReject != nil {
		g.onReject(code)
	}
}

// Middleware wires the gate into the router chain. The four stages run
// strictly in sequence; each depends on the previous stage's output.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, params, known := g.engine.Match(r.Method, r.URL.Path)
		if !known {
			// Unknown paths fall through to the router's 404, but only
			// after the credential checks a protected route would get.
			route = &policy.Route{Method: r.Method, Pattern: r.URL.Path, Auth: policy.BasicAndBearer}
			params = nil
		}

		if route.Auth == policy.Public {
			ctx := ContextWithPrincipal(r.Context(), policy.Anonymous())
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		basic, bearer := SplitAuthorization(r.Header.Get("Authorization"))

		if err := g.verifier.VerifyBasic(basic); err != nil {
			g.countReject(ErrorCode(err))
			w.Header().Set("WWW-Authenticate", basicChallenge)
			shared.RespondError(w, http.StatusUnauthorized, ErrorCode(err), "authentication required")
			return
		}

		principal := policy.Anonymous()
		var claims *Claims
		if route.Auth == policy.BasicAndBearer {
			var err error
			claims, err = g.verifier.VerifyBearer(r.Context(), bearer)
			if err != nil {
				g.reject(w, r, err)
				return
			}
			principal, err = g.resolver.Resolve(r.Context(), claims)
			if err != nil {
				g.reject(w, r, err)
				return
			}
		}

		decision := g.engine.Authorize(principal, route, params)
		if !decision.Allow {
			g.countReject(decision.Reason)
			shared.RespondError(w, http.StatusForbidden, decision.Reason, "access denied")
			return
		}

		ctx := ContextWithPrincipal(r.Context(), principal)
		ctx = ContextWithDecision(ctx, decision)
		if claims != nil {
			ctx = ContextWithClaims(ctx, claims)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// reject maps bearer verification and resolution failures onto terminal
// responses. The WWW-Authenticate challenge belongs to Basic failures only,
// which the middleware handles inline. Unexpected failures are logged with
// context and surfaced as a bare 500.
func (g *Gate) reject(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrMissingCredential),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrUnknownUser):
		g.countReject(ErrorCode(err))
		shared.RespondError(w, http.StatusUnauthorized, ErrorCode(err), "authentication required")
	default:
		if g.logger != nil {
			g.logger.Error("request gate", slog.String("path", r.URL.Path), slog.Any("error", err))
		}
		g.countReject("INTERNAL")
		shared.RespondError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
