package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/i18n"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type achievementHandler struct {
	responder Responder
	logger    zerolog.Logger
	content   ContentService
}

func newAchievementHandler(content ContentService) achievementHandler {
	logger := log.With().Str("handlerName", "achievementHandler").Logger()

	return achievementHandler{
		responder: NewResponder(logger),
		logger:    logger,
		content:   content,
	}
}

func achievementInput(r *http.Request, uploads *formUploads) (services.AchievementInput, error) {
	var in services.AchievementInput
	if !isForm(r) {
		return in, decodeJSON(r, "achievement", &in)
	}
	if err := parseForm(r, "achievement"); err != nil {
		return in, err
	}

	in.Title = r.FormValue("title")
	in.Description = r.FormValue("description")
	in.DateAchieved = r.FormValue("date_achieved")
	in.CategoryID = r.FormValue("category_id")
	in.Tags = r.FormValue("tags")

	var err error
	if in.IsPublished, err = formBool(r, "is_published"); err != nil {
		return in, err
	}
	if in.Image, err = uploads.get(r, "image"); err != nil {
		return in, err
	}
	if in.Certificate, err = uploads.get(r, "certificate"); err != nil {
		return in, err
	}
	return in, nil
}

func (h achievementHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		achievements, err := h.content.ListAchievements(r.Context(), actorFrom(r))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"achievements": achievements, "total": len(achievements)})
	}
}

func (h achievementHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "achievementID", "achievement")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		achievement, err := h.content.GetAchievement(r.Context(), actorFrom(r), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, achievement)
	}
}

func (h achievementHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uploads := &formUploads{}
		defer uploads.close(r)

		in, err := achievementInput(r, uploads)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		achievement, err := h.content.CreateAchievement(r.Context(), actor, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, map[string]any{
			"message":     i18n.T(actor.Locale, "achievement_created"),
			"achievement": achievement,
		})
	}
}

func (h achievementHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "achievementID", "achievement")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		uploads := &formUploads{}
		defer uploads.close(r)

		in, err := achievementInput(r, uploads)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		achievement, err := h.content.UpdateAchievement(r.Context(), actor, id, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{
			"message":     i18n.T(actor.Locale, "achievement_updated"),
			"achievement": achievement,
		})
	}
}

func (h achievementHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "achievementID", "achievement")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		if err := h.content.DeleteAchievement(r.Context(), actor, id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, i18n.T(actor.Locale, "achievement_deleted"))
	}
}
