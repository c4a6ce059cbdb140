package server

import (
	"errors"
	"net/http"

	"connectplus/internal/utils"
	"connectplus/pkg/types"
)

func (s *Service) handleGetNeeds(w http.ResponseWriter, r *http.Request) {
	needs, err := s.needRepo.Needs(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("failed to fetch needs")
		needs = []*types.Need{}
	}

	s.writeJSON(w, http.StatusOK, needs)
}

func (s *Service) handleGetNeed(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	need, err := s.needRepo.Need(r.Context(), id)
	if err != nil {
		if errors.Is(err, types.ErrNeedNotFound) {
			s.writeError(w, http.StatusNotFound, "Need not found")
			return
		}
		s.internalServerError(w, err, "Failed to fetch need")
		return
	}

	s.writeJSON(w, http.StatusOK, need)
}

func (s *Service) handlePostNeed(w http.ResponseWriter, r *http.Request) {
	var need types.Need
	if err := decodeJSON(w, r, &need); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if blank(need.Name, need.Icon) {
		s.writeError(w, http.StatusBadRequest, "Need name and icon are required")
		return
	}

	need.ID = ""

	created, err := s.needRepo.CreateNeed(r.Context(), &need)
	if err != nil {
		s.internalServerError(w, err, "Failed to create need")
		return
	}

	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Service) handleUpdateNeed(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch types.NeedPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if (patch.Name != nil && blank(*patch.Name)) || (patch.Icon != nil && blank(*patch.Icon)) {
		s.writeError(w, http.StatusBadRequest, "Need name and icon are required")
		return
	}

	if patch.UpdatedAt == nil {
		patch.UpdatedAt = utils.StringPtr(utils.Now())
	}

	updated, err := s.needRepo.UpdateNeed(r.Context(), id, &patch)
	if err != nil {
		if errors.Is(err, types.ErrNeedNotFound) {
			s.writeError(w, http.StatusNotFound, "Need not found")
			return
		}
		s.internalServerError(w, err, "Failed to update need")
		return
	}

	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Service) handleDeleteNeed(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	deleted, err := s.needRepo.DeleteNeed(r.Context(), id)
	if err != nil {
		s.internalServerError(w, err, "Failed to delete need")
		return
	}
	if !deleted {
		s.writeError(w, http.StatusNotFound, "Need not found")
		return
	}

	s.writeSuccess(w)
}
