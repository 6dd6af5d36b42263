package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/giftledger/giftledger/internal/config"
	"github.com/giftledger/giftledger/internal/rest"
	"github.com/giftledger/giftledger/pkg/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

type authRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

// GoogleAuth drives the sign-in flow: OAuth against Google, allow-list check
// at account-creation time, then a session cookie.
type GoogleAuth struct {
	db          *pgxpool.Pool
	userService user.Service
	sessions    *SessionService
	allowList   AllowList
	oauthConfig *oauth2.Config
}

func NewGoogleAuth(db *pgxpool.Pool, userService user.Service, sessions *SessionService, allowList AllowList, cfg config.Application) *GoogleAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/auth/callback",
		Scopes:       []string{oauth2api.UserinfoEmailScope, oauth2api.UserinfoProfileScope},
	}

	return &GoogleAuth{
		db:          db,
		userService: userService,
		sessions:    sessions,
		allowList:   allowList,
		oauthConfig: oauthConfig,
	}
}

// OAuthLogin godoc
// @Summary Begin Google sign-in
// @Description Returns the Google consent screen URL to redirect the browser to
// @Tags Auth
// @Produce json
// @Success 200 {object} authRedirect
// @Router /api/auth/login [get]
func (g *GoogleAuth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stateNonce := uuid.New().String()
	finalUrl := r.URL.Query().Get("finalUrl")

	// store nonce for callback verification
	_, err := g.db.Exec(r.Context(), "INSERT INTO oauth_state (nonce) VALUES ($1)", stateNonce)
	if err != nil {
		log.Errorf("failed to store OAuth state nonce: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		encodeErr := json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error: "Failed to begin Google sign-in",
		})
		if encodeErr != nil {
			http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
		}
		return
	}

	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	u := g.oauthConfig.AuthCodeURL(finalUrl + "|" + stateNonce)

	w.WriteHeader(http.StatusOK)
	encodeErr := json.NewEncoder(w).Encode(authRedirect{
		RedirectUrl: u,
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

// OAuthCallback godoc
// @Summary Complete Google sign-in
// @Description Exchanges the OAuth code, checks the allow-list, and sets the session cookie
// @Tags Auth
// @Success 302 "Redirect to the app; denied sign-ins redirect with denied=true"
// @Router /api/auth/callback [get]
func (g *GoogleAuth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	parts := strings.SplitN(state, "|", 2)
	if len(parts) != 2 {
		http.Error(w, "invalid OAuth state", http.StatusBadRequest)
		return
	}
	finalUrl := parts[0]
	nonce := parts[1]
	if finalUrl == "" {
		finalUrl = "/"
	}

	if err := g.consumeNonce(r.Context(), nonce); err != nil {
		log.Errorf("failed to verify OAuth state nonce: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	session, err := g.signIn(r.Context(), code)
	if err != nil {
		if errors.Is(err, ErrAccessDenied) {
			log.Warnf("sign-in denied: %v", err)
			http.Redirect(w, r, finalUrl+"?success=false&denied=true", http.StatusFound)
			return
		}
		log.Errorf("sign-in failed: %v", err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, finalUrl+"?success=true", http.StatusFound)
}

// Logout godoc
// @Summary End the current session
// @Tags Auth
// @Success 204 "No Content"
// @Router /api/auth/session [delete]
func (g *GoogleAuth) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(SessionCookieName)
	if err == nil {
		if err := g.sessions.Revoke(r.Context(), cookie.Value); err != nil {
			log.Warnf("failed to revoke session: %v", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}

// signIn exchanges the code, fetches the Google profile, and enforces the
// allow-list before any account is created.
func (g *GoogleAuth) signIn(ctx context.Context, code string) (Session, error) {
	token, err := g.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return Session{}, fmt.Errorf("unable to exchange code for token: %w", err)
	}

	profile, err := g.fetchProfile(ctx, token)
	if err != nil {
		return Session{}, err
	}
	if profile.Email == "" {
		return Session{}, fmt.Errorf("google profile has no email")
	}

	if !g.allowList.Allows(profile.Email) {
		return Session{}, fmt.Errorf("%w (%s)", ErrAccessDenied, profile.Email)
	}

	account, err := g.userService.FindOrCreate(ctx, user.User{
		Email:       profile.Email,
		DisplayName: profile.Name,
		PhotoUrl:    profile.Picture,
	})
	if err != nil {
		return Session{}, err
	}

	return g.sessions.Create(ctx, account.Id)
}

func (g *GoogleAuth) fetchProfile(ctx context.Context, token *oauth2.Token) (*oauth2api.Userinfo, error) {
	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(g.oauthConfig.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google userinfo client: %w", err)
	}
	profile, err := svc.Userinfo.Get().Do()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch Google profile: %w", err)
	}
	return profile, nil
}

// consumeNonce deletes the nonce row; a nonce that was never stored (or was
// already used) fails the callback.
func (g *GoogleAuth) consumeNonce(ctx context.Context, nonce string) error {
	result, err := g.db.Exec(ctx, "DELETE FROM oauth_state WHERE nonce = $1", nonce)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
