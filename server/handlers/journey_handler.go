package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"loca-server/api/nominatim"
	"loca-server/models"
	"loca-server/service"
)

const LOCATION_QUERY_ARG = "location"

// JourneyHandler serves the AI journey summary, the trending report, and
// reverse geocoding.
type JourneyHandler struct {
	journeyService *services.JourneyService
	geocoder       nominatim.ReverseGeocoder
}

func NewJourneyHandler(
	journeyService *services.JourneyService,
	geocoder nominatim.ReverseGeocoder) *JourneyHandler {

	return &JourneyHandler{
		journeyService: journeyService,
		geocoder:       geocoder,
	}
}

type journeySummaryRequest struct {
	CheckIns []models.CheckIn `json:"check_ins"`
}

// SummarizeJourney handles POST /v1/journey/summary
func (h *JourneyHandler) SummarizeJourney(w http.ResponseWriter, r *http.Request) {
	var req journeySummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, h.journeyService.Summarize(r.Context(), req.CheckIns))
}

// GetTrending handles GET /v1/journey/trending
func (h *JourneyHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	report := h.journeyService.Trending(r.Context(), r.URL.Query().Get(LOCATION_QUERY_ARG))
	if report == nil {
		writeJSON(w, map[string]interface{}{})
		return
	}
	writeJSON(w, report)
}

// ReverseGeocode handles GET /v1/geocode/reverse
func (h *JourneyHandler) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, lng, ok := parseLatLng(r.URL.Query(), w)
	if !ok {
		return
	}

	label, err := h.geocoder.ReverseGeocode(r.Context(), lat, lng)
	if err != nil {
		log.Println("[JourneyHandler] Reverse geocode failed:", err)
		// The screen shows a placeholder rather than an error state.
		writeJSON(w, map[string]string{"label": "Konum bulunamadı"})
		return
	}
	writeJSON(w, map[string]string{"label": label})
}
