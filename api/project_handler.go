package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/i18n"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder  Responder
	logger     zerolog.Logger
	content    ContentService
	engagement EngagementService
	site       SiteService
	baseURL    string
}

func newProjectHandler(content ContentService, engagement EngagementService, site SiteService, baseURL string) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		content:    content,
		engagement: engagement,
		site:       site,
		baseURL:    baseURL,
	}
}

// ProjectCollection is the admin project listing.
type ProjectCollection struct {
	Projects []models.Project `json:"projects"`
	Total    int              `json:"total"`
}

type ProjectResponse struct {
	Message string          `json:"message"`
	Project *models.Project `json:"project"`
}

type CommentResponse struct {
	Message string          `json:"message"`
	Comment *models.Comment `json:"comment"`
}

// getProjectDetail retrieves a project page
// @Summary Get project
// @Description Retrieves a project with its approved comments and whether the viewer liked it. Drafts are only visible to admins.
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} services.ProjectDetail
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID} [get]
func (h projectHandler) getProjectDetail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		detail, err := h.engagement.ProjectDetail(r.Context(), actorFrom(r), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, detail)
	}
}

// toggleLike likes or unlikes a project
// @Summary Toggle like
// @Tags Projects
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} services.LikeResult
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /project/{projectID}/like [post]
func (h projectHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		result, err := h.engagement.ToggleLike(r.Context(), actorFrom(r), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, result)
	}
}

// addComment posts a comment on a project
// @Summary Add comment
// @Tags Projects
// @Accept json
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Param comment body services.CommentInput true "Comment text, 1 to 500 characters"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Empty or oversized comment"
// @Router /project/{projectID}/comment [post]
func (h projectHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in services.CommentInput
		if isForm(r) {
			if err := parseForm(r, "comment"); err != nil {
				h.responder.WriteError(w, err)
				return
			}
			in.Content = r.FormValue("content")
		} else if err := decodeJSON(r, "comment", &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		comment, err := h.engagement.AddComment(r.Context(), actor, projectID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, CommentResponse{
			Message: i18n.T(actor.Locale, "comment_posted"),
			Comment: comment,
		})
	}
}

// shareProject redirects to a LinkedIn or X share intent for the project.
func (h projectHandler) shareProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		baseURL := h.baseURL
		if baseURL == "" {
			baseURL = requestBaseURL(r)
		}
		link, err := h.site.ShareLink(r.Context(), actorFrom(r), projectID, r.URL.Query().Get("platform"), baseURL)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		http.Redirect(w, r, link, http.StatusFound)
	}
}

// getAllProjects retrieves every project, drafts included
// @Summary List projects (admin)
// @Tags Admin
// @Produce json
// @Success 200 {object} ProjectCollection
// @Failure 403 {object} ErrorResponse "access denied"
// @Router /admin/projects [get]
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.content.ListAdminProjects(r.Context(), actorFrom(r))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, ProjectCollection{Projects: projects, Total: len(projects)})
	}
}

func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.content.GetProject(r.Context(), actorFrom(r), projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// projectInput reads a project from a multipart form or a JSON body.
func projectInput(r *http.Request, uploads *formUploads) (services.ProjectInput, error) {
	var in services.ProjectInput
	if !isForm(r) {
		return in, decodeJSON(r, "project", &in)
	}
	if err := parseForm(r, "project"); err != nil {
		return in, err
	}

	in.Title = r.FormValue("title")
	in.Description = r.FormValue("description")
	in.DemoLink = formOptional(r, "demo_link")
	in.GithubLink = formOptional(r, "github_link")
	in.CategoryID = r.FormValue("category_id")
	in.Tags = r.FormValue("tags")

	var err error
	if in.IsPublished, err = formBool(r, "is_published"); err != nil {
		return in, err
	}
	if in.IsFeatured, err = formBool(r, "is_featured"); err != nil {
		return in, err
	}
	if in.Image, err = uploads.get(r, "image"); err != nil {
		return in, err
	}
	if in.Video, err = uploads.get(r, "video"); err != nil {
		return in, err
	}
	return in, nil
}

// createProject creates a new project
// @Summary Create project
// @Description Creates a project from multipart form fields (title, description, demo_link, github_link, category_id, tags, is_published, is_featured) and optional image and video files.
// @Tags Admin
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} ProjectResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid field"
// @Router /admin/projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uploads := &formUploads{}
		defer uploads.close(r)

		in, err := projectInput(r, uploads)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		project, err := h.content.CreateProject(r.Context(), actor, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteStatusJSON(w, http.StatusCreated, ProjectResponse{
			Message: i18n.T(actor.Locale, "project_created"),
			Project: project,
		})
	}
}

func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		uploads := &formUploads{}
		defer uploads.close(r)

		in, err := projectInput(r, uploads)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		project, err := h.content.UpdateProject(r.Context(), actor, projectID, in)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, ProjectResponse{
			Message: i18n.T(actor.Locale, "project_updated"),
			Project: project,
		})
	}
}

// deleteProject removes a project with its comments and likes
// @Summary Delete project
// @Tags Admin
// @Produce json
// @Param projectID path string true "Project ID" format(uuid)
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /admin/projects/{projectID} [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := pathID(r, "projectID", "project")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		actor := actorFrom(r)
		if err := h.content.DeleteProject(r.Context(), actor, projectID); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteMessage(w, http.StatusOK, i18n.T(actor.Locale, "project_deleted"))
	}
}
