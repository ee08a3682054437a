package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/i18n"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder    Responder
	logger       zerolog.Logger
	identity     IdentityService
	sessions     *auth.Sessions
	secureCookie bool
}

func newAuthHandler(identity IdentityService, sessions *auth.Sessions, secureCookie bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		identity:     identity,
		sessions:     sessions,
		secureCookie: secureCookie,
	}
}

func (h authHandler) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

// login verifies credentials and starts a session
// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginInput true "Email, password and remember_me"
// @Success 200 {object} LoginResponse
// @Failure 401 {object} ErrorResponse "invalid email or password"
// @Router /login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.LoginInput
		if err := decodeJSON(r, "login", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.identity.Authenticate(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, expires, err := h.sessions.Issue(user.ID, in.RememberMe)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to start session", err))
			return
		}
		h.setSessionCookie(w, token, expires)

		h.logger.Info().Str("userID", user.ID.String()).Bool("rememberMe", in.RememberMe).Msg("User logged in")
		h.responder.WriteJSON(w, LoginResponse{
			Message:   i18n.T(actorFrom(r).Locale, "login_successful"),
			Token:     token,
			ExpiresAt: expires,
			User:      user,
		})
	}
}

// register creates an account
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body services.RegisterInput true "New account"
// @Success 201 {object} UserResponse
// @Failure 409 {object} ErrorResponse "email already registered"
// @Router /register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.RegisterInput
		if err := decodeJSON(r, "registration", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.identity.Register(r.Context(), in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteStatusJSON(w, http.StatusCreated, UserResponse{
			Message: i18n.T(actorFrom(r).Locale, "registration_success"),
			User:    user,
		})
	}
}

func (h authHandler) logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     auth.SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
		h.responder.WriteMessage(w, http.StatusOK, i18n.T(actorFrom(r).Locale, "logged_out"))
	}
}

func (h authHandler) forgotPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.ForgotPasswordInput
		if err := decodeJSON(r, "forgot password", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.identity.RequestReset(r.Context(), in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, i18n.T(actorFrom(r).Locale, "reset_link_sent"))
	}
}

// checkResetToken lets the reset form find out early that a link is stale.
func (h authHandler) checkResetToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.identity.ValidateReset(r.Context(), chi.URLParam(r, "token")); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, i18n.T(actorFrom(r).Locale, "reset_token_valid"))
	}
}

func (h authHandler) resetPassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.ResetPasswordInput
		if err := decodeJSON(r, "reset password", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		in.Token = chi.URLParam(r, "token")

		if err := h.identity.ConsumeReset(r.Context(), in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, i18n.T(actorFrom(r).Locale, "password_reset"))
	}
}

func (h authHandler) changePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.ChangePasswordInput
		if err := decodeJSON(r, "change password", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		if err := h.identity.ChangePassword(r.Context(), actor, in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, i18n.T(actor.Locale, "password_changed"))
	}
}
