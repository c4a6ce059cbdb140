package server

import (
	"errors"
	"net/http"
	"strings"

	"connectplus/internal/utils"
	"connectplus/internal/wizard"
	"connectplus/pkg/types"
)

func (s *Service) handleGetResources(w http.ResponseWriter, r *http.Request) {
	var query resourceQuery
	if err := decoder.Decode(&query, r.URL.Query()); err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid query parameters")
		return
	}

	resources, err := s.resourceRepo.Resources(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch resources")
		resources = []*types.Resource{}
	}

	if !query.empty() {
		resources = wizard.Filter(resources, query.Roles, query.Needs, query.Search)
	}

	s.writeJSON(w, http.StatusOK, resources)
}

func (s *Service) handleGetResource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	resource, err := s.resourceRepo.Resource(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrResourceNotFound) {
			s.writeError(w, http.StatusNotFound, "Resource not found")
			return
		}
		s.internalServerError(w, err, "Failed to fetch resource")
		return
	}

	s.writeJSON(w, http.StatusOK, resource)
}

func (s *Service) handlePostResource(w http.ResponseWriter, r *http.Request) {
	var resource types.Resource
	if err := decodeJSON(w, r, &resource); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if blank(resource.Title, resource.Description, resource.URL, resource.ResourceType) {
		s.writeError(w, http.StatusBadRequest, "Title, description, URL, and resource type are required")
		return
	}

	// ids are always assigned by the store on this path
	resource.ID = ""

	created, err := s.resourceRepo.CreateResource(r.Context(), &resource)
	if err != nil {
		s.internalServerError(w, err, "Failed to create resource")
		return
	}

	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Service) handleUpdateResource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch types.ResourcePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if clearsRequiredResourceField(&patch) {
		s.writeError(w, http.StatusBadRequest, "Title, description, URL, and resource type cannot be empty")
		return
	}

	if patch.UpdatedAt == nil {
		patch.UpdatedAt = utils.StringPtr(utils.Now())
	}

	updated, err := s.resourceRepo.UpdateResource(r.Context(), id, &patch)
	if err != nil {
		if errors.Is(err, types.ErrResourceNotFound) {
			s.writeError(w, http.StatusNotFound, "Resource not found")
			return
		}
		s.internalServerError(w, err, "Failed to update resource")
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Service) handleDeleteResource(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	deleted, err := s.resourceRepo.DeleteResource(r.Context(), id)
	if err != nil {
		s.internalServerError(w, err, "Failed to delete resource")
		return
	}
	if !deleted {
		s.writeError(w, http.StatusNotFound, "Resource not found")
		return
	}

	s.writeSuccess(w)
}

// clearsRequiredResourceField reports whether patch sets a required field to
// a blank value.
func clearsRequiredResourceField(patch *types.ResourcePatch) bool {
	for _, field := range []*string{patch.Title, patch.Description, patch.URL, patch.ResourceType} {
		if field != nil && blank(*field) {
			return true
		}
	}
	return false
}

// blank reports whether any of values is empty after trimming.
func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
