package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"connectplus/internal/dashboard"
	"connectplus/internal/transfer"
	"connectplus/internal/utils"
	"connectplus/pkg/types"

	"golang.org/x/sync/errgroup"
)

func (s *Service) handleGetExport(w http.ResponseWriter, r *http.Request) {
	kind := transfer.ParseType(r.URL.Query().Get("type"))

	snapshot, err := s.exporter.Export(r.Context(), kind)
	if err != nil {
		s.internalServerError(w, err, "Export failed")
		return
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, transfer.FileName(snapshot.Type, time.Now())))
	s.writeJSON(w, http.StatusOK, snapshot)
}

func (s *Service) handlePostImport(w http.ResponseWriter, r *http.Request) {
	var req types.ImportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := s.importer.Import(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, transfer.ErrMissingImportData):
			s.writeError(w, http.StatusBadRequest, "Missing type or data")
		case errors.Is(err, transfer.ErrInvalidImportType):
			s.writeError(w, http.StatusBadRequest, "Invalid import type")
		default:
			s.internalServerError(w, err, "Import failed")
		}
		return
	}

	s.writeJSON(w, http.StatusOK, &types.ImportResponse{
		Message:    "Import completed",
		Results:    results,
		ImportedAt: utils.Now(),
	})
}

func (s *Service) handleGetStats(w http.ResponseWriter, r *http.Request) {
	var (
		resources []*types.Resource
		roles     []*types.Role
		needs     []*types.Need
	)

	group, ctx := errgroup.WithContext(r.Context())
	group.Go(func() (err error) {
		resources, err = s.resourceRepo.Resources(ctx)
		return err
	})
	group.Go(func() (err error) {
		roles, err = s.roleRepo.Roles(ctx)
		return err
	})
	group.Go(func() (err error) {
		needs, err = s.needRepo.Needs(ctx)
		return err
	})

	if err := group.Wait(); err != nil {
		s.internalServerError(w, err, "Failed to compute dashboard statistics")
		return
	}

	s.writeJSON(w, http.StatusOK, dashboard.Compute(resources, roles, needs))
}
