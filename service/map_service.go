package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"loca-server/api/osrm"
	"loca-server/config"
	"loca-server/models"
	"loca-server/spatial"
	"loca-server/util"
)

// Inline messages shown near the map search control.
const (
	MSG_NO_CAFES_IN_RADIUS = "Bu yarıçapta mekan bulunamadı."
	MSG_NO_CAFES_IN_AREA   = "Bu bölgede uygun mekan bulunamadı."
	MSG_SEARCH_FAILED      = "Arama hatası. API anahtarını kontrol edin."
)

const DEFAULT_MAP_RADIUS_METERS = 500

// SearchRequest carries one map search action: an optional new pin
// position, the selected radius tier (0 = off), active filters, free-text
// query, and a force flag for explicit "search this area" taps.
type SearchRequest struct {
	Pin     *models.Coordinates `json:"pin,omitempty"`
	Radius  float64             `json:"radius"`
	Filters []string            `json:"filters"`
	Query   string              `json:"query"`
	Force   bool                `json:"force"`
}

// SearchResult is the render plan for one search: the visible cafés, the
// radius circle overlay (nil when radius is off), and the inline message.
type SearchResult struct {
	Session *models.MapSession `json:"session"`
	Visible []models.Cafe      `json:"visible"`
	Circle  *models.Polygon    `json:"circle,omitempty"`
	Message string             `json:"message,omitempty"`
}

// MapService owns map sessions and computes render plans: which cafés are
// visible, the radius overlay, viewport markers, and driving routes.
type MapService struct {
	placesService    *PlacesService
	discoveryService *DiscoveryService
	routingAPI       osrm.RoutingAPI

	mu       sync.RWMutex
	sessions map[string]*models.MapSession
	indexes  map[string]*spatial.ClusterIndex
}

// NewMapService constructs a new MapService with its dependencies.
func NewMapService(
	placesService *PlacesService,
	discoveryService *DiscoveryService,
	routingAPI osrm.RoutingAPI) *MapService {

	return &MapService{
		placesService:    placesService,
		discoveryService: discoveryService,
		routingAPI:       routingAPI,
		sessions:         make(map[string]*models.MapSession),
		indexes:          make(map[string]*spatial.ClusterIndex),
	}
}

// CreateSession opens a new map session centered on the user. The pin
// starts at the user location and the default radius tier is selected.
func (ms *MapService) CreateSession(userLat, userLng float64) *models.MapSession {
	session := &models.MapSession{
		ID:             uuid.NewString(),
		UserLocation:   models.Coordinates{Lat: userLat, Lng: userLng},
		PinLocation:    models.Coordinates{Lat: userLat, Lng: userLng},
		SelectedRadius: DEFAULT_MAP_RADIUS_METERS,
		ActiveFilters:  []string{},
		FetchedCafes:   []models.Cafe{},
	}

	ms.mu.Lock()
	ms.sessions[session.ID] = session
	ms.indexes[session.ID] = spatial.NewClusterIndex()
	ms.mu.Unlock()

	log.Printf("[MapService] Created session %s at %.5f,%.5f", session.ID, userLat, userLng)
	return session
}

// GetSession restores a session by id, e.g. when the user returns from a
// detail view.
func (ms *MapService) GetSession(id string) (*models.MapSession, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	session, ok := ms.sessions[id]
	if !ok {
		return nil, fmt.Errorf("map session %s not found", id)
	}
	return session, nil
}

// Search runs one map search action and returns the render plan. A radius
// no larger than the last fetched one, around an unmoved center, reuses the
// fetched set filtered by distance; anything else hits the provider. Force
// always fetches.
func (ms *MapService) Search(ctx context.Context, sessionID string, req SearchRequest) (*SearchResult, error) {
	session, err := ms.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	ms.mu.Lock()
	if req.Pin != nil {
		session.PinLocation = *req.Pin
		session.HasPinBeenPlaced = true
	}
	session.SelectedRadius = req.Radius
	session.ActiveFilters = req.Filters
	if session.ActiveFilters == nil {
		session.ActiveFilters = []string{}
	}
	session.SearchQuery = req.Query
	center := session.Center()
	ms.mu.Unlock()

	if req.Radius <= 0 {
		// Radius off: no overlay, no fetch; filter whatever is loaded.
		return ms.buildResult(session, center, nil), nil
	}

	if !req.Force && ms.canReuseFetch(session, center, req.Radius) {
		log.Printf("[MapService] Session %s reusing fetch for radius %.0f", sessionID, req.Radius)
		circle := util.CirclePolygon(center.Lat, center.Lng, req.Radius)
		return ms.buildResult(session, center, &circle), nil
	}

	// The provider query carries each active filter's primary term so the
	// fetched universe already leans toward the selected categories.
	keyword := ms.discoveryService.PrimaryKeyword(req.Filters)
	cafes, fetchErr := ms.placesService.FetchNearby(ctx, center.Lat, center.Lng, req.Radius, keyword)

	ms.mu.Lock()
	if fetchErr != nil {
		session.SearchError = MSG_SEARCH_FAILED
	} else {
		session.FetchedCafes = cafes
		session.LastSearch = &models.SearchFootprint{
			Lat:    center.Lat,
			Lng:    center.Lng,
			Radius: req.Radius,
		}
		session.SearchError = ""
	}
	ms.mu.Unlock()

	circle := util.CirclePolygon(center.Lat, center.Lng, req.Radius)
	result := ms.buildResult(session, center, &circle)

	if fetchErr == nil && len(result.Visible) == 0 {
		result.Message = MSG_NO_CAFES_IN_AREA
		ms.setError(session, MSG_NO_CAFES_IN_AREA)
	}
	return result, nil
}

// Markers returns the viewport markers for a session. Only the largest
// radius tier clusters; smaller tiers render every café individually.
func (ms *MapService) Markers(sessionID string, bbox models.BoundingBox, zoom int) ([]models.Marker, error) {
	session, err := ms.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	ms.mu.RLock()
	index := ms.indexes[sessionID]
	clustering := session.SelectedRadius == config.CLUSTERING_RADIUS_METERS
	ms.mu.RUnlock()

	if clustering {
		return index.MarkersFor(bbox, zoom), nil
	}
	return index.MarkersFor(bbox, spatial.MAX_CLUSTER_ZOOM+1), nil
}

// Route plans a driving route from the user location to a café in the
// fetched set. Any routing failure yields a nil plan, never an error.
func (ms *MapService) Route(ctx context.Context, sessionID, cafeID string) (*models.RoutePlan, error) {
	session, err := ms.GetSession(sessionID)
	if err != nil {
		return nil, err
	}

	ms.mu.RLock()
	var target *models.Cafe
	for i := range session.FetchedCafes {
		if session.FetchedCafes[i].ID == cafeID {
			target = &session.FetchedCafes[i]
			break
		}
	}
	user := session.UserLocation
	ms.mu.RUnlock()

	if target == nil {
		return nil, fmt.Errorf("cafe %s is not in the fetched set", cafeID)
	}

	route, err := ms.routingAPI.Route(ctx, user.Lat, user.Lng,
		target.Coordinates.Lat, target.Coordinates.Lng)
	if err != nil {
		log.Printf("[MapService] Routing failed for session %s: %v", sessionID, err)
		return nil, nil
	}

	var bounds models.BoundingBox
	for _, v := range route.Line.Coordinates {
		bounds.Extend(v[1], v[0])
	}

	return &models.RoutePlan{
		Line:            route.Line,
		Destination:     target.Coordinates,
		Bounds:          bounds,
		DistanceMeters:  route.DistanceMeters,
		DurationSeconds: route.DurationSeconds,
	}, nil
}

// canReuseFetch reports whether the last fetch covers this search: center
// unmoved within epsilon, a radius no larger than the fetched one, and a
// non-empty fetched set.
func (ms *MapService) canReuseFetch(session *models.MapSession, center models.Coordinates, radius float64) bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	last := session.LastSearch
	if last == nil || len(session.FetchedCafes) == 0 {
		return false
	}
	sameCenter := absDelta(center.Lat, last.Lat) < config.SAME_CENTER_EPSILON_DEGREES &&
		absDelta(center.Lng, last.Lng) < config.SAME_CENTER_EPSILON_DEGREES
	return sameCenter && radius <= last.Radius
}

// buildResult derives the visible list from the fetched set (radius cut,
// then filters and query), rebuilds the marker index, and attaches the
// session's inline message.
func (ms *MapService) buildResult(session *models.MapSession, center models.Coordinates, circle *models.Polygon) *SearchResult {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	visible := session.FetchedCafes
	if session.SelectedRadius > 0 {
		inRadius := make([]models.Cafe, 0, len(visible))
		for _, c := range visible {
			dist := util.Haversine(center.Lat, center.Lng, c.Coordinates.Lat, c.Coordinates.Lng)
			if dist <= session.SelectedRadius {
				inRadius = append(inRadius, c)
			}
		}
		visible = inRadius
	}

	visible = ms.discoveryService.Filter(visible, session.ActiveFilters, session.SearchQuery)

	if session.SearchError != MSG_SEARCH_FAILED {
		session.SearchError = ""
		if session.SelectedRadius > 0 && len(visible) == 0 && len(session.FetchedCafes) > 0 {
			session.SearchError = MSG_NO_CAFES_IN_RADIUS
		}
	}

	ms.indexes[session.ID].Rebuild(visible)

	return &SearchResult{
		Session: session,
		Visible: visible,
		Circle:  circle,
		Message: session.SearchError,
	}
}

func (ms *MapService) setError(session *models.MapSession, msg string) {
	ms.mu.Lock()
	session.SearchError = msg
	ms.mu.Unlock()
}

func absDelta(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
