package server

import (
	"errors"
	"net/http"

	"connectplus/internal/utils"
	"connectplus/pkg/types"
)

func (s *Service) handleGetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := s.roleRepo.Roles(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch roles")
		roles = []*types.Role{}
	}

	s.writeJSON(w, http.StatusOK, roles)
}

func (s *Service) handleGetRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	role, err := s.roleRepo.Role(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrRoleNotFound) {
			s.writeError(w, http.StatusNotFound, "Role not found")
			return
		}
		s.internalServerError(w, err, "Failed to fetch role")
		return
	}

	s.writeJSON(w, http.StatusOK, role)
}

func (s *Service) handlePostRole(w http.ResponseWriter, r *http.Request) {
	var role types.Role
	if err := decodeJSON(w, r, &role); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if blank(role.Name) {
		s.writeError(w, http.StatusBadRequest, "Role name is required")
		return
	}

	role.ID = ""

	created, err := s.roleRepo.CreateRole(r.Context(), &role)
	if err != nil {
		s.internalServerError(w, err, "Failed to create role")
		return
	}

	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Service) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch types.RolePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if patch.Name != nil && blank(*patch.Name) {
		s.writeError(w, http.StatusBadRequest, "Role name is required")
		return
	}

	if patch.UpdatedAt == nil {
		patch.UpdatedAt = utils.StringPtr(utils.Now())
	}

	updated, err := s.roleRepo.UpdateRole(r.Context(), id, &patch)
	if err != nil {
		if errors.Is(err, types.ErrRoleNotFound) {
			s.writeError(w, http.StatusNotFound, "Role not found")
			return
		}
		s.internalServerError(w, err, "Failed to update role")
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Service) handleDeleteRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	deleted, err := s.roleRepo.DeleteRole(r.Context(), id)
	if err != nil {
		s.internalServerError(w, err, "Failed to delete role")
		return
	}
	if !deleted {
		s.writeError(w, http.StatusNotFound, "Role not found")
		return
	}

	s.writeSuccess(w)
}
