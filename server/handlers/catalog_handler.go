package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"loca-server/service"
)

const (
	CITY_QUERY_ARG = "city"
	USER_QUERY_ARG = "user"
)

// Points granted per loyalty check-in.
const CHECKIN_POINTS = 25

// CatalogHandler serves collections, editorial picks, campaigns, loyalty
// and favorites.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GetCollections handles GET /v1/collections
func (h *CatalogHandler) GetCollections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.catalogService.Collections(r.URL.Query().Get(CITY_QUERY_ARG)))
}

// GetCollectionCafes handles GET /v1/collections/{id}/cafes
func (h *CatalogHandler) GetCollectionCafes(w http.ResponseWriter, r *http.Request) {
	cafes, err := h.catalogService.CollectionCafes(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Collection not found", http.StatusNotFound)
		return
	}
	writeJSON(w, cafes)
}

// GetEditorPicks handles GET /v1/editorial
func (h *CatalogHandler) GetEditorPicks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.catalogService.EditorPicks())
}

// GetCampaigns handles GET /v1/campaigns
func (h *CatalogHandler) GetCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.catalogService.Campaigns()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, campaigns)
}

// ClaimCampaign handles POST /v1/campaigns/{id}/claim
func (h *CatalogHandler) ClaimCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.catalogService.ClaimCampaign(mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, services.ErrCampaignExhausted) {
			http.Error(w, "Campaign limit reached", http.StatusConflict)
			return
		}
		http.Error(w, "Campaign not found", http.StatusNotFound)
		return
	}
	writeJSON(w, campaign)
}

// JoinLoyalty handles POST /v1/cafes/{id}/join
func (h *CatalogHandler) JoinLoyalty(w http.ResponseWriter, r *http.Request) {
	cafe, err := h.catalogService.JoinLoyalty(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Cafe not found", http.StatusNotFound)
		return
	}
	writeJSON(w, cafe)
}

// CheckIn handles POST /v1/cafes/{id}/checkin
func (h *CatalogHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	cafe, err := h.catalogService.CheckIn(mux.Vars(r)["id"], CHECKIN_POINTS)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, cafe)
}

type favoriteRequest struct {
	CafeID string `json:"cafe_id"`
}

// ToggleFavorite handles POST /v1/users/{id}/favorites
func (h *CatalogHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ids, err := h.catalogService.ToggleFavorite(mux.Vars(r)["id"], req.CafeID)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, ids)
}

// GetFavorites handles GET /v1/users/{id}/favorites
func (h *CatalogHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	cafes, err := h.catalogService.Favorites(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, cafes)
}
