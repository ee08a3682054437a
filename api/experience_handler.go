package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/i18n"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type experienceHandler struct {
	responder Responder
	logger    zerolog.Logger
	content   ContentService
}

func newExperienceHandler(content ContentService) experienceHandler {
	logger := log.With().Str("handlerName", "experienceHandler").Logger()

	return experienceHandler{
		responder: NewResponder(logger),
		logger:    logger,
		content:   content,
	}
}

func experienceInput(r *http.Request) (services.ExperienceInput, error) {
	var in services.ExperienceInput
	if !isForm(r) {
		return in, decodeJSON(r, "experience", &in)
	}
	if err := parseForm(r, "experience"); err != nil {
		return in, err
	}

	in.Title = r.FormValue("title")
	in.Company = r.FormValue("company")
	in.Description = r.FormValue("description")
	in.StartDate = r.FormValue("start_date")
	in.EndDate = formOptional(r, "end_date")
	in.Location = formOptional(r, "location")
	in.CategoryID = r.FormValue("category_id")
	in.Tags = r.FormValue("tags")

	var err error
	if in.IsCurrent, err = formBool(r, "is_current"); err != nil {
		return in, err
	}
	if in.IsPublished, err = formBool(r, "is_published"); err != nil {
		return in, err
	}
	return in, nil
}

func (h experienceHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		experiences, err := h.content.ListExperiences(r.Context(), actorFrom(r))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"experiences": experiences, "total": len(experiences)})
	}
}

func (h experienceHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "experienceID", "experience")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		experience, err := h.content.GetExperience(r.Context(), actorFrom(r), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, experience)
	}
}

func (h experienceHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := experienceInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		experience, err := h.content.CreateExperience(r.Context(), actor, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, map[string]any{
			"message":    i18n.T(actor.Locale, "experience_created"),
			"experience": experience,
		})
	}
}

func (h experienceHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "experienceID", "experience")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		in, err := experienceInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		experience, err := h.content.UpdateExperience(r.Context(), actor, id, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{
			"message":    i18n.T(actor.Locale, "experience_updated"),
			"experience": experience,
		})
	}
}

func (h experienceHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "experienceID", "experience")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		if err := h.content.DeleteExperience(r.Context(), actor, id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, i18n.T(actor.Locale, "experience_deleted"))
	}
}
