package web

import (
	"net/http"
	"strings"

	"github.com/louisbranch/tempo/internal/auth/grant"
	apperrors "github.com/louisbranch/tempo/internal/platform/errors"
)

// requireGrant authenticates API requests with an access grant bearer token
// and stores the owner identity on the request context.
func requireGrant(grants grant.Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		claims, err := grant.Validate(token, grants)
		if err != nil {
			if apperrors.GetCode(err) == apperrors.CodeUnknown {
				err = apperrors.Wrap(apperrors.CodeGrantInvalid, "access grant is invalid", err)
			}
			writeError(w, r, err)
			return
		}
		ctx := grant.WithOwner(r.Context(), claims.OwnerID())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
