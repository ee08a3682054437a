package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/i18n"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder Responder
	logger    zerolog.Logger
	content   ContentService
}

func newCategoryHandler(content ContentService) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder: NewResponder(logger),
		logger:    logger,
		content:   content,
	}
}

func categoryInput(r *http.Request) (services.CategoryInput, error) {
	var in services.CategoryInput
	if !isForm(r) {
		return in, decodeJSON(r, "category", &in)
	}
	if err := parseForm(r, "category"); err != nil {
		return in, err
	}
	in.Name = r.FormValue("name")
	in.Description = formOptional(r, "description")
	return in, nil
}

func (h categoryHandler) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.content.ListCategories(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{"categories": categories, "total": len(categories)})
	}
}

func (h categoryHandler) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "categoryID", "category")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		category, err := h.content.GetCategory(r.Context(), actorFrom(r), id)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

func (h categoryHandler) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in, err := categoryInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		category, err := h.content.CreateCategory(r.Context(), actor, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, map[string]any{
			"message":  i18n.T(actor.Locale, "category_created"),
			"category": category,
		})
	}
}

func (h categoryHandler) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "categoryID", "category")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		in, err := categoryInput(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		category, err := h.content.UpdateCategory(r.Context(), actor, id, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, map[string]any{
			"message":  i18n.T(actor.Locale, "category_updated"),
			"category": category,
		})
	}
}

// delete removes a category. Content that used it is left uncategorised.
func (h categoryHandler) delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "categoryID", "category")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		if err := h.content.DeleteCategory(r.Context(), actor, id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, i18n.T(actor.Locale, "category_deleted"))
	}
}
