// ABOUTME: HTTP handlers for conversions, history, health and metrics
// ABOUTME: Encodes JSON responses and maps domain errors to status codes

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/harper/eci2ecef/internal/frames"
	"github.com/harper/eci2ecef/internal/metrics"
	"github.com/harper/eci2ecef/internal/models"
	"github.com/harper/eci2ecef/internal/storage"
	"github.com/harper/eci2ecef/internal/ui"
	"go.uber.org/zap"
)

// ConvertRequest is the body of POST /api/v1/conversions.
type ConvertRequest struct {
	Epoch models.Epoch   `json:"epoch"`
	ECI   models.Vector3 `json:"eci_km"`
	Model string         `json:"model,omitempty"`
}

// ConversionResponse is a recorded conversion.
type ConversionResponse struct {
	ID string `json:"id"`
	ui.ResultJSON
}

// defaultListLimit caps GET /api/v1/conversions when no limit is given.
const defaultListLimit = 20

func (s *Server) resolveModel(name string) (frames.Model, error) {
	if name == "" {
		return s.model, nil
	}
	return frames.ParseModel(name)
}

// convert runs one conversion and rejects results JSON cannot carry.
func (s *Server) convert(modelName string, epoch models.Epoch, eci models.Vector3) (frames.Result, int, error) {
	model, err := s.resolveModel(modelName)
	if err != nil {
		return frames.Result{}, http.StatusBadRequest, err
	}
	res, err := frames.Convert(model, epoch, eci)
	if err != nil {
		return frames.Result{}, http.StatusBadRequest, err
	}
	if err := ui.CheckFinite(res, nil); err != nil {
		return frames.Result{}, http.StatusUnprocessableEntity, err
	}
	return res, http.StatusOK, nil
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var vals [9]float64
	for i, name := range models.ArgNames {
		raw := q.Get(name)
		if raw == "" {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("missing parameter %s", name))
			return
		}
		f, err := models.ParseFloatArg(name, raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		vals[i] = f
	}
	epoch := models.Epoch{Year: vals[0], Month: vals[1], Day: vals[2], Hour: vals[3], Minute: vals[4], Second: vals[5]}
	eci := models.Vector3{X: vals[6], Y: vals[7], Z: vals[8]}

	res, status, err := s.convert(q.Get("model"), epoch, eci)
	if err != nil {
		s.respondError(w, status, err.Error())
		return
	}
	metrics.ObserveConversion(string(res.Model), false)

	var geo *frames.Geodetic
	if withGeo, _ := strconv.ParseBool(q.Get("geodetic")); withGeo {
		g := frames.ToGeodetic(res.ECEF)
		if ui.CheckFinite(res, &g) == nil {
			geo = &g
		}
	}
	s.respondJSON(w, http.StatusOK, ui.NewResultJSON(res, geo))
}

func (s *Server) handleCreateConversion(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, status, err := s.convert(req.Model, req.Epoch, req.ECI)
	if err != nil {
		s.respondError(w, status, err.Error())
		return
	}

	c := models.NewConversion(string(res.Model), res.Epoch, res.ECI, res.Printed(),
		res.Angle.Radians, res.Angle.JulianDate)
	if err := s.repo.CreateConversion(c); err != nil {
		s.logger.Error("record conversion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.ObserveConversion(string(res.Model), true)
	s.logger.Debug("recorded conversion", zap.String("id", c.ID.String()))

	s.respondJSON(w, http.StatusCreated, ConversionResponse{
		ID:         c.ID.String(),
		ResultJSON: ui.NewResultJSON(res, nil),
	})
}

func (s *Server) handleListConversions(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	conversions, err := s.repo.ListConversions(limit)
	if err != nil {
		s.logger.Error("list conversions failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"conversions": conversions,
		"count":       len(conversions),
	})
}

func (s *Server) lookupID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid conversion id")
		return uuid.Nil, false
	}
	return id, true
}

func (s *Server) handleGetConversion(w http.ResponseWriter, r *http.Request) {
	id, ok := s.lookupID(w, r)
	if !ok {
		return
	}
	c, err := s.repo.GetConversion(id)
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "conversion not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteConversion(w http.ResponseWriter, r *http.Request) {
	id, ok := s.lookupID(w, r)
	if !ok {
		return
	}
	s.logger.Debug("delete conversion request", zap.String("id", id.String()))
	err := s.repo.DeleteConversion(id)
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "conversion not found")
		return
	}
	if err != nil {
		s.logger.Error("deletion failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "model": string(s.model)})
}

// respondJSON encodes data before writing the header so encoding failures
// (NaN in stored history) surface as a 500.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		s.logger.Error("encode response failed", zap.Error(err))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{"error": "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
