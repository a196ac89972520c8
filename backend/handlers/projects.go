// ABOUTME: HTTP handlers for stored projects and their estimates
// ABOUTME: Single-project reads are cached and invalidated on every write

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/engestimate/estimator/backend/models"
	"github.com/engestimate/estimator/backend/store"
)

// ProjectListResponse wraps a project listing.
type ProjectListResponse struct {
	Projects []models.Project `json:"projects"`
	Count    int              `json:"count"`
}

// ProjectEstimateResponse is a stored project with the full estimate just run.
type ProjectEstimateResponse struct {
	Project                 models.Project          `json:"project"`
	Estimate                models.EstimationResult `json:"estimate"`
	ClientProfileMultiplier float64                 `json:"client_profile_multiplier"`
}

func projectCacheKey(id string) string {
	return "project:" + id
}

// CreateProject registers a project.
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProjectRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	size, _ := models.ParseProjectSize(req.ProjectSize)
	p := models.Project{
		Name:             req.Name,
		Size:             size,
		ClientProfile:    req.ClientProfile,
		ClientComplexity: models.DefaultClientComplexity,
	}
	if req.ClientComplexity != nil {
		p.ClientComplexity = *req.ClientComplexity
	}

	created, err := h.store.Create(r.Context(), p)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	slog.Info("Project created", "id", created.ID, "size", created.Size)
	h.writeJSON(w, http.StatusCreated, created)
}

// ListProjects returns projects oldest first. ?include_archived=true adds archived ones.
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	includeArchived := false
	if v := r.URL.Query().Get("include_archived"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			h.writeError(w, "include_archived must be a boolean", http.StatusBadRequest)
			return
		}
		includeArchived = parsed
	}

	projects, err := h.store.List(r.Context(), includeArchived)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ProjectListResponse{Projects: projects, Count: len(projects)})
}

// GetProject returns one project by ID.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if cached, found := h.cache.Get(projectCacheKey(id)); found {
		h.writeJSON(w, http.StatusOK, cached)
		return
	}

	p, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	h.cache.Set(projectCacheKey(id), p)
	h.writeJSON(w, http.StatusOK, p)
}

// ArchiveProject soft-deletes a project.
func (h *Handler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.Archive(r.Context(), id); err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	h.cache.Clear(projectCacheKey(id))
	slog.Info("Project archived", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// EstimateProject runs the engine with the project's size and client
// attributes and stores the result on the project.
func (h *Handler) EstimateProject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.ProjectEstimateRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	p, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	if p.Archived {
		h.writeError(w, "Project is archived", http.StatusConflict)
		return
	}

	estimateReq := req.ForProject(p)
	result, err := h.engine.Estimate(estimateReq.ToInput(h.cfg.DefaultContingencyPct, h.cfg.DefaultOverheadPct))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	updated, err := h.store.SaveEstimate(r.Context(), id, result.Snapshot(time.Now().UTC()))
	if err != nil {
		h.writeStoreError(w, r, err)
		return
	}
	h.cache.Clear(projectCacheKey(id))

	slog.Info("Project estimated", "id", id, "total_hours", result.TotalHours)
	h.writeJSON(w, http.StatusOK, ProjectEstimateResponse{
		Project:                 updated,
		Estimate:                result,
		ClientProfileMultiplier: h.tables.ProfileMultiplier(p.ClientProfile),
	})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		h.writeError(w, "Project not found", http.StatusNotFound)
		return
	}
	h.handleServiceError(w, r, err)
}
