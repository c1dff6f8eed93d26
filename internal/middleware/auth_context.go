package middleware

import (
	"context"
	"net/http"
	"strings"

	"animal-reservations/internal/platform/apperr"
	"animal-reservations/internal/platform/httpx"
	"animal-reservations/internal/ports/auth"
)

type ctxKey string

const (
	claimsKey    ctxKey = "claims"
	authErrorKey ctxKey = "auth_error"
)

// AuthContext:
// - Si viene Bearer token => Verify() y setea claims.
// - Si el token no verifica => guarda el error; RequireUser responde 401.
// - Sin header el request sigue igual; las rutas públicas no exigen auth.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if strings.TrimSpace(header) == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(header)
			if token == "" || verifier == nil {
				ctx := context.WithValue(r.Context(), authErrorKey, error(apperr.ErrInvalidToken))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// No cortamos aquí: una ruta pública con token vencido sigue andando.
				ctx := context.WithValue(r.Context(), authErrorKey, err)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser corta con 401 si AuthContext no dejó claims: MissingUserError
// si no hubo token, InvalidTokenError si el token no sirvió.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaims(r.Context()); ok {
			next.ServeHTTP(w, r)
			return
		}

		if err, ok := r.Context().Value(authErrorKey).(error); ok && err != nil {
			if apperr.KindOf(err) != apperr.KindAuth {
				err = apperr.ErrInvalidToken.Wrap(err)
			}
			httpx.WriteError(w, r, err)
			return
		}
		httpx.WriteError(w, r, apperr.ErrMissingUser)
	})
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	if !ok || c.UserID == "" {
		return auth.Claims{}, false
	}
	return c, true
}

// WithClaims inyecta claims en un contexto (tests y llamadas internas).
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
