package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/i18n"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const languageCookieMaxAge = 365 * 24 * 60 * 60

type siteHandler struct {
	responder    Responder
	logger       zerolog.Logger
	site         SiteService
	assets       AssetReader
	health       HealthChecker
	startupTime  time.Time
	secureCookie bool
}

func newSiteHandler(site SiteService, assets AssetReader, health HealthChecker, startupTime time.Time, secureCookie bool) siteHandler {
	logger := log.With().Str("handlerName", "siteHandler").Logger()

	return siteHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		site:         site,
		assets:       assets,
		health:       health,
		startupTime:  startupTime,
		secureCookie: secureCookie,
	}
}

// home returns the landing page projects
// @Summary Home page
// @Tags Site
// @Produce json
// @Param sort query string false "recent (default) or popular"
// @Success 200 {object} services.HomePage
// @Router / [get]
func (h siteHandler) home() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.site.Home(r.Context(), r.URL.Query().Get("sort"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

func (h siteHandler) about() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.site.About(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// portfolio lists published projects with optional filters
// @Summary Portfolio
// @Tags Site
// @Produce json
// @Param category query string false "Category ID"
// @Param tag query string false "Tag name"
// @Param search query string false "Case-insensitive match on title or description"
// @Param sort query string false "recent (default) or popular"
// @Success 200 {object} services.PortfolioPage
// @Router /portfolio [get]
func (h siteHandler) portfolio() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		page, err := h.site.Portfolio(r.Context(), services.PortfolioQuery{
			Category: query.Get("category"),
			Tag:      query.Get("tag"),
			Search:   query.Get("search"),
			Sort:     query.Get("sort"),
		})
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

func (h siteHandler) setLanguage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		language := strings.ToLower(chi.URLParam(r, "language"))
		if !i18n.Supported(language) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("language", "supported languages are en and pt"))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     i18n.CookieName,
			Value:    language,
			Path:     "/",
			MaxAge:   languageCookieMaxAge,
			Secure:   h.secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
		h.responder.WriteMessage(w, http.StatusOK, i18n.T(language, "language_changed"))
	}
}

// uploads streams a stored asset. Keys that escape the upload root are
// treated as missing.
func (h siteHandler) uploads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := chi.URLParam(r, "*")
		body, contentType, err := h.assets.Get(r.Context(), key)
		if errors.Is(err, storage.ErrObjectNotFound) || errors.Is(err, storage.ErrInvalidKey) {
			h.responder.WriteError(w, errs.NewNotFound("file"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to read upload", err))
			return
		}
		defer body.Close()

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=86400")
		w.WriteHeader(http.StatusOK)
		if _, err := io.Copy(w, body); err != nil {
			h.logger.Warn().Err(err).Str("key", key).Msg("Upload stream interrupted")
		}
	}
}

func (h siteHandler) healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:        "ok",
			UptimeSeconds: int64(time.Since(h.startupTime).Seconds()),
		}
		if err := h.health.Ping(r.Context()); err != nil {
			h.logger.Error().Err(err).Msg("Health check failed")
			resp.Status = "unavailable"
			h.responder.WriteStatusJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		h.responder.WriteJSON(w, resp)
	}
}

// dashboard returns the admin counters and latest comments
// @Summary Admin dashboard
// @Tags Admin
// @Produce json
// @Success 200 {object} services.Dashboard
// @Failure 403 {object} ErrorResponse "access denied"
// @Router /admin [get]
func (h siteHandler) dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := h.site.Dashboard(r.Context(), actorFrom(r))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, dashboard)
	}
}

func (h siteHandler) getAbout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		about, err := h.site.GetAbout(r.Context(), actorFrom(r))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, about)
	}
}

func (h siteHandler) updateAbout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.AboutInput
		uploads := &formUploads{}
		defer uploads.close(r)

		if isForm(r) {
			if err := parseForm(r, "about"); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			in.Content = r.FormValue("content")
			in.Skills = formOptional(r, "skills")

			var err error
			if in.ProfileImage, err = uploads.get(r, "profile_image"); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			if in.Resume, err = uploads.get(r, "resume"); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		} else if err := decodeJSON(r, "about", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		about, err := h.site.UpdateAbout(r.Context(), actor, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{
			"message":  i18n.T(actor.Locale, "about_updated"),
			"about_me": about,
		})
	}
}
