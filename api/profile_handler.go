package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/i18n"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	identity  IdentityService
}

func newProfileHandler(identity IdentityService) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		identity:  identity,
	}
}

// ownProfile returns the signed-in user's profile.
func (h profileHandler) ownProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := actorFrom(r)
		profile, err := h.identity.GetProfile(r.Context(), actor, actor.UserID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, profile)
	}
}

// getProfile returns any user's public profile
// @Summary Get profile
// @Tags Profiles
// @Produce json
// @Param userID path string true "User ID" format(uuid)
// @Success 200 {object} services.Profile
// @Failure 404 {object} ErrorResponse "user not found"
// @Router /profile/{userID} [get]
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "userID", "user")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.identity.GetProfile(r.Context(), actorFrom(r), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, profile)
	}
}

// editProfile accepts JSON, or a form when a new profile image is attached.
func (h profileHandler) editProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.ProfileInput
		uploads := &formUploads{}
		defer uploads.close(r)

		if isForm(r) {
			if err := parseForm(r, "profile"); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			in.Username = r.FormValue("username")
			in.AboutMe = formOptional(r, "about_me")
			image, err := uploads.get(r, "profile_image")
			if err != nil {
				h.responder.WriteError(w, err)
				return
			}
			in.ProfileImage = image
		} else if err := decodeJSON(r, "profile", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		user, err := h.identity.UpdateProfile(r.Context(), actor, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, UserResponse{Message: i18n.T(actor.Locale, "profile_updated"), User: user})
	}
}

func (h profileHandler) addSocialNetwork() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in services.SocialNetworkInput
		if err := decodeJSON(r, "social network", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		network, err := h.identity.AddSocialNetwork(r.Context(), actor, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, map[string]any{
			"message":        i18n.T(actor.Locale, "social_network_added"),
			"social_network": network,
		})
	}
}

func (h profileHandler) removeSocialNetwork() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "networkID", "social network")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		if err := h.identity.RemoveSocialNetwork(r.Context(), actor, id); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, i18n.T(actor.Locale, "social_network_removed"))
	}
}
