package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"zenumljpg/src/domain"
)

func (s *Server) ConvertDiagram(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req ConvertDiagramRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	out, err := s.diagramService.Convert(r.Context(), req.ZenUMLCode, principal)
	if err != nil {
		s.logger.Error("Failed to convert diagram", "owner_id", principal.UserID, "error", err)

		errorCode := "internal"
		var convErr *domain.ConvertError
		if errors.As(err, &convErr) {
			errorCode = string(convErr.Stage)
		}

		// Contract: the convert endpoint stays 200-shaped and reports
		// failure through the body.
		s.writeJSON(w, http.StatusOK, ConvertDiagramResponse{
			Success:   false,
			Message:   fmt.Sprintf("An error occurred: %v", err),
			ErrorCode: errorCode,
		})
		return
	}

	s.writeJSON(w, http.StatusOK, ConvertDiagramResponse{
		Success:     true,
		Message:     "Diagram converted successfully.",
		DiagramData: out.DiagramData,
		DiagramID:   out.DiagramID,
	})
}

func (s *Server) ViewDiagram(w http.ResponseWriter, r *http.Request) {
	diagramID := r.PathValue("diagramId")
	if diagramID == "" {
		http.Error(w, "Diagram ID is required", http.StatusBadRequest)
		return
	}

	out, err := s.diagramService.View(r.Context(), diagramID)
	if err != nil {
		if errors.Is(err, domain.ErrDiagramNotFound) {
			http.Error(w, domain.ErrDiagramNotFound.Error(), http.StatusNotFound)
			return
		}

		s.logger.Error("Failed to view diagram", "diagram_id", diagramID, "error", err)
		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, MapViewToResponse(out))
}

func (s *Server) ExportDiagramJPG(w http.ResponseWriter, r *http.Request) {
	diagramID := r.PathValue("diagramId")
	if diagramID == "" {
		http.Error(w, "Diagram ID is required", http.StatusBadRequest)
		return
	}

	out, err := s.diagramService.Export(r.Context(), diagramID)
	if err != nil {
		// A record without stored bytes is the same 404-class failure as a
		// missing record.
		if errors.Is(err, domain.ErrDiagramNotFound) || errors.Is(err, domain.ErrDiagramImageMissing) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		s.logger.Error("Failed to export diagram", "diagram_id", diagramID, "error", err)
		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	s.writeJSON(w, http.StatusOK, MapExportToResponse(out))
}

func (s *Server) DownloadDiagram(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	diagramID := strings.TrimSuffix(filename, ".jpg")
	if diagramID == "" {
		http.Error(w, "Diagram ID is required", http.StatusBadRequest)
		return
	}

	image, err := s.diagramService.Image(r.Context(), diagramID)
	if err != nil {
		if errors.Is(err, domain.ErrDiagramNotFound) || errors.Is(err, domain.ErrDiagramImageMissing) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		s.logger.Error("Failed to download diagram", "diagram_id", diagramID, "error", err)
		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(len(image)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", diagramID+".jpg"))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(image); err != nil {
		s.logger.Error("Failed to write image response", "diagram_id", diagramID, "error", err)
	}
}
