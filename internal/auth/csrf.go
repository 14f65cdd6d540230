package auth

import (
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFHeaderName is the header clients echo the token back in.
const CSRFHeaderName = "X-CSRF-Token"

// CSRFProtection returns a Gin middleware enforcing double-submit CSRF
// tokens on state-changing requests. The secret is the hex session
// secret; cookies follow the session cookie settings.
func CSRFProtection(secret string, secureCookies bool) (gin.HandlerFunc, error) {
	key, err := hex.DecodeString(secret)
	if err != nil {
		return nil, err
	}

	protect := csrf.Protect(
		key,
		csrf.Secure(secureCookies),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteStrictMode),
		csrf.RequestHeader(CSRFHeaderName),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"error": "CSRF token invalid or missing"}`))
		})),
	)

	return func(c *gin.Context) {
		passed := false
		protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Writer.Header().Set(CSRFHeaderName, csrf.Token(r))
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		// The error handler already wrote the response; stop the chain.
		if !passed {
			c.Abort()
		}
	}, nil
}
