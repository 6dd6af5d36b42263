package app

import (
	"errors"
	"net/http"
	"strings"

	"github.com/giftledger/giftledger/internal/config"
	"github.com/giftledger/giftledger/pkg/auth"
	"github.com/giftledger/giftledger/pkg/user"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Resolve the session cookie into the current user. Every /api route
	// except the auth endpoints themselves requires a signed-in user.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if !strings.HasPrefix(req.URL.Path, "/api/") || strings.HasPrefix(req.URL.Path, "/api/auth/") {
				next.ServeHTTP(w, req)
				return
			}

			cookie, err := req.Cookie(auth.SessionCookieName)
			if err != nil {
				http.Error(w, "sign-in required", http.StatusUnauthorized)
				return
			}

			ctx := req.Context()
			userId, err := deps.SessionService.Resolve(ctx, cookie.Value)
			if err != nil {
				if errors.Is(err, auth.ErrSessionNotFound) {
					log.Debug("session expired or unknown")
					http.Error(w, "sign-in required", http.StatusUnauthorized)
					return
				}
				log.Errorf("failed to resolve session: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			u, err := deps.UserService.GetUser(ctx, userId)
			if err != nil {
				if errors.Is(err, user.ErrUserNotFound) {
					log.Debugf("account %d behind session no longer exists", userId)
					http.Error(w, "sign-in required", http.StatusUnauthorized)
					return
				}
				log.Errorf("failed to get user: %v", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			ctx = user.WithUser(ctx, u)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
}
