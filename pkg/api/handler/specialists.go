package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/twacha/skincare-assistant/pkg/api/response"
	"github.com/twacha/skincare-assistant/pkg/domain"
)

type SpecialistLocator interface {
	LocateSpecialists(ctx context.Context, latitude, longitude float64) ([]domain.Dermatologist, error)
}

type specialists struct {
	locator SpecialistLocator
	writer  response.JSONResponseWriter
}

func NewSpecialists(locator SpecialistLocator) *specialists {
	return &specialists{locator: locator}
}

type locateRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FindSpecialists resolves the browser's geolocation fix into a list of
// nearby dermatologists. Order is kept as the lookup returned it.
func (s *specialists) FindSpecialists(w http.ResponseWriter, r *http.Request) {
	var req locateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writer.WriteErrorResponse(w, http.StatusBadRequest, "Malformed request body.")
		return
	}

	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		s.writer.WriteErrorResponse(w, http.StatusBadRequest, "Coordinates out of range.")
		return
	}

	list, err := s.locator.LocateSpecialists(r.Context(), req.Latitude, req.Longitude)
	if err != nil {
		s.writer.WriteErrorResponse(w, http.StatusBadGateway, domain.UserMessage(err))
		return
	}

	s.writer.WriteSuccessResponse(w, map[string]any{"specialists": list})
}
