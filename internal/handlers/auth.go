package handlers

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tripshare/tripshare/internal/logging"
	"github.com/tripshare/tripshare/internal/models"
	"github.com/tripshare/tripshare/internal/services"
)

const (
	oauthStateCookieName = "tripshare_oauth_state"
	oauthStateCookiePath = "/api/auth/oauth/"
	oauthStateCookieAge  = 600 // matches the server-side state TTL
)

type AuthHandler struct {
	authService     services.AuthServiceInterface
	userService     services.UserServiceInterface
	successRedirect string // browser target after an OAuth callback
	secure          bool
}

func NewAuthHandler(authService services.AuthServiceInterface, userService services.UserServiceInterface, successRedirect string, secure bool) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		userService:     userService,
		successRedirect: successRedirect,
		secure:          secure,
	}
}

type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type TokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	User *models.User `json:"user"`
}

type ProvidersResponse struct {
	Providers []string `json:"providers"`
}

type UpdateProfileRequest struct {
	DisplayName string `json:"display_name"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	session, err := h.authService.SignUp(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		writeServiceError(w, err, "signing up")
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

// Token signs in with email and password.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.authService.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, "signing in")
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProvidersResponse{Providers: h.authService.OAuthProviders()})
}

// OAuthStart redirects to the provider and pins the state to this browser
// with a cookie holding its hash.
func (h *AuthHandler) OAuthStart(w http.ResponseWriter, r *http.Request) {
	consentURL, state, err := h.authService.BeginOAuth(r.Context(), r.PathValue("provider"))
	if err != nil {
		writeServiceError(w, err, "starting oauth")
		return
	}
	h.setOAuthStateCookie(w, hashOAuthState(state), oauthStateCookieAge)
	http.Redirect(w, r, consentURL, http.StatusFound)
}

// OAuthCallback finishes the provider round trip. With a success redirect
// configured the session travels in the URL fragment so it never reaches
// server logs; otherwise it is returned as JSON.
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")
	query := r.URL.Query()
	bound := oauthStateBound(r, query.Get("state"))
	h.setOAuthStateCookie(w, "", -1)

	if providerErr := query.Get("error"); providerErr != "" {
		logging.Warn("OAuth provider returned an error", map[string]interface{}{
			"provider": provider,
			"error":    providerErr,
		})
		h.finishOAuth(w, r, nil, "Sign-in was cancelled")
		return
	}
	if !bound {
		logging.Warn("OAuth callback without matching state cookie", map[string]interface{}{"provider": provider})
		h.failOAuth(w, r, provider, services.ErrInvalidOAuthState)
		return
	}

	session, err := h.authService.CompleteOAuth(r.Context(), provider, query.Get("state"), query.Get("code"))
	if err != nil {
		h.failOAuth(w, r, provider, err)
		return
	}

	h.finishOAuth(w, r, session, "")
}

func (h *AuthHandler) failOAuth(w http.ResponseWriter, r *http.Request, provider string, err error) {
	if h.successRedirect == "" {
		writeServiceError(w, err, "completing oauth")
		return
	}
	if statusFor(err) == http.StatusInternalServerError {
		logging.Error("Error completing oauth", map[string]interface{}{"provider": provider, "error": err.Error()})
		h.finishOAuth(w, r, nil, "Sign-in failed")
		return
	}
	h.finishOAuth(w, r, nil, err.Error())
}

func hashOAuthState(state string) string {
	sum := sha256.Sum256([]byte(state))
	return hex.EncodeToString(sum[:])
}

// oauthStateBound reports whether the callback's state was issued to the
// browser presenting it.
func oauthStateBound(r *http.Request, state string) bool {
	cookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || cookie.Value == "" || state == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(hashOAuthState(state))) == 1
}

// setOAuthStateCookie uses SameSite=Lax so the cookie survives the
// top-level redirect back from the provider.
func (h *AuthHandler) setOAuthStateCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    value,
		Path:     oauthStateCookiePath,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) finishOAuth(w http.ResponseWriter, r *http.Request, session *models.Session, failure string) {
	if h.successRedirect == "" {
		if session == nil {
			writeError(w, http.StatusUnauthorized, failure)
			return
		}
		writeJSON(w, http.StatusOK, session)
		return
	}

	fragment := url.Values{}
	if session != nil {
		fragment.Set("access_token", session.AccessToken)
		fragment.Set("token_type", session.TokenType)
		fragment.Set("expires_in", strconv.Itoa(session.ExpiresIn))
	} else {
		fragment.Set("error", failure)
	}
	http.Redirect(w, r, h.successRedirect+"#"+fragment.Encode(), http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := GetTokenFromContext(r.Context())
	if token == "" {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	if err := h.authService.SignOut(r.Context(), token); err != nil {
		writeServiceError(w, err, "signing out")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Signed out"})
}

// Session reports the signed-in user, or null for anonymous callers.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SessionResponse{User: GetUserFromContext(r.Context())})
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	updated, err := h.userService.UpdateDisplayName(r.Context(), user.ID, req.DisplayName)
	if err != nil {
		writeServiceError(w, err, "updating profile")
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{User: updated})
}

// ChangePassword swaps the caller's password. The token used for the request
// is revoked and a new session is returned in its place.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "New password is required")
		return
	}

	session, err := h.authService.ChangePassword(r.Context(), user.ID, req.CurrentPassword, req.NewPassword, GetTokenFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, err, "changing password")
		return
	}

	writeJSON(w, http.StatusOK, session)
}
