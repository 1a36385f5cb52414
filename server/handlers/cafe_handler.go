package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"loca-server/config"
	"loca-server/service"
)

const (
	LAT_QUERY_ARG     = "lat"
	LNG_QUERY_ARG     = "lng"
	RADIUS_QUERY_ARG  = "radius"
	KEYWORD_QUERY_ARG = "keyword"
)

// CafeHandler serves nearby search and the passive discovery strip.
type CafeHandler struct {
	placesService    *services.PlacesService
	discoveryService *services.DiscoveryService
}

func NewCafeHandler(
	placesService *services.PlacesService,
	discoveryService *services.DiscoveryService) *CafeHandler {

	return &CafeHandler{
		placesService:    placesService,
		discoveryService: discoveryService,
	}
}

// GetCafesNearby handles GET /v1/cafes/nearby
func (h *CafeHandler) GetCafesNearby(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := parseLatLng(r.URL.Query(), w)
	if !ok {
		return // error already written
	}
	radius, err := parseArgFloat64(r.URL.Query(), RADIUS_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+RADIUS_QUERY_ARG, http.StatusBadRequest)
		return
	}
	keyword := r.URL.Query().Get(KEYWORD_QUERY_ARG)

	// Provider failures resolve to an empty list; clients see data or
	// nothing, never raw errors.
	cafes, err := h.placesService.FetchNearby(r.Context(), lat, lng, radius, keyword)
	if err != nil {
		log.Println("[CafeHandler] Nearby fetch degraded to empty:", err)
	}

	writeJSON(w, cafes)
}

// GetDiscovery handles GET /v1/discovery
func (h *CafeHandler) GetDiscovery(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := parseLatLng(r.URL.Query(), w)
	if !ok {
		return
	}

	cafes := h.placesService.FetchDiscovery(
		r.Context(), lat, lng, config.DISCOVERY_DEFAULT_RADIUS_METERS,
		r.URL.Query().Get(KEYWORD_QUERY_ARG))

	writeJSON(w, map[string]interface{}{
		"cafes":     cafes,
		"shortcuts": h.discoveryService.AvailableShortcuts(lat, lng),
	})
}

// Ping handles GET /ping
func (h *CafeHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	writeJSON(w, map[string]string{"status": "pong"})
}

func parseLatLng(vals url.Values, w http.ResponseWriter) (lat, lng float64, ok bool) {
	var err error
	lat, err = parseArgFloat64(vals, LAT_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LAT_QUERY_ARG, http.StatusBadRequest)
		return
	}
	lng, err = parseArgFloat64(vals, LNG_QUERY_ARG)
	if err != nil {
		http.Error(w, "Invalid argument "+LNG_QUERY_ARG, http.StatusBadRequest)
		return
	}
	ok = true
	return
}

func parseArgFloat64(vals url.Values, name string) (float64, error) {
	s := vals.Get(name)
	return strconv.ParseFloat(s, 64)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("Error encoding response:", err)
	}
}
