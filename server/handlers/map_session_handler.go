package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"loca-server/models"
	"loca-server/service"
)

const (
	BBOX_QUERY_ARG = "bbox" // latMin,lngMin,latMax,lngMax
	ZOOM_QUERY_ARG = "zoom"
)

// MapSessionHandler serves the map screen: session lifecycle, searches,
// viewport markers, and route plans.
type MapSessionHandler struct {
	mapService *services.MapService
}

func NewMapSessionHandler(mapService *services.MapService) *MapSessionHandler {
	return &MapSessionHandler{mapService: mapService}
}

type createSessionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CreateSession handles POST /v1/map/sessions
func (h *MapSessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session := h.mapService.CreateSession(req.Lat, req.Lng)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(session); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// GetSession handles GET /v1/map/sessions/{id}
func (h *MapSessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.mapService.GetSession(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, session)
}

// Search handles POST /v1/map/sessions/{id}/search
func (h *MapSessionHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req services.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.mapService.Search(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, result)
}

// GetMarkers handles GET /v1/map/sessions/{id}/markers
func (h *MapSessionHandler) GetMarkers(w http.ResponseWriter, r *http.Request) {
	bbox, ok := parseBBox(r.URL.Query().Get(BBOX_QUERY_ARG))
	if !ok {
		http.Error(w, "Invalid argument "+BBOX_QUERY_ARG, http.StatusBadRequest)
		return
	}
	zoom, err := strconv.Atoi(r.URL.Query().Get(ZOOM_QUERY_ARG))
	if err != nil {
		http.Error(w, "Invalid argument "+ZOOM_QUERY_ARG, http.StatusBadRequest)
		return
	}

	markers, err := h.mapService.Markers(mux.Vars(r)["id"], bbox, zoom)
	if err != nil {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, markers)
}

type routeRequest struct {
	CafeID string `json:"cafe_id"`
}

// Route handles POST /v1/map/sessions/{id}/route
func (h *MapSessionHandler) Route(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	plan, err := h.mapService.Route(r.Context(), mux.Vars(r)["id"], req.CafeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	// A nil plan means routing failed; the map simply draws no overlay.
	writeJSON(w, map[string]interface{}{"route": plan})
}

func parseBBox(raw string) (models.BoundingBox, bool) {
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return models.BoundingBox{}, false
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return models.BoundingBox{}, false
		}
		vals[i] = v
	}
	return models.BoundingBox{
		LatMin: vals[0], LngMin: vals[1],
		LatMax: vals[2], LngMax: vals[3],
	}, true
}
