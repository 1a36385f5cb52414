package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"loca-server/api/osrm"
	"loca-server/api/places"
	"loca-server/models"
)

func newTestMapService(api places.PlacesAPI) (*MapService, *osrm.OSRMClientMock) {
	ps := newTestPlacesService(api, &fakeClock{now: time.Now()})
	routing := osrm.NewOSRMClientMock()
	return NewMapService(ps, NewDiscoveryService(), routing), routing
}

func TestCreateSession_Defaults(t *testing.T) {
	ms, _ := newTestMapService(&fakePlacesAPI{})

	session := ms.CreateSession(40.991, 29.027)

	if session.ID == "" {
		t.Fatal("expected a session id")
	}
	if session.SelectedRadius != DEFAULT_MAP_RADIUS_METERS {
		t.Errorf("SelectedRadius = %v; want %v", session.SelectedRadius, DEFAULT_MAP_RADIUS_METERS)
	}
	if session.HasPinBeenPlaced {
		t.Error("pin should start unplaced")
	}
	if session.Center() != session.UserLocation {
		t.Error("center should be the user location before the pin is placed")
	}

	restored, err := ms.GetSession(session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if restored.ID != session.ID {
		t.Error("restored session does not match")
	}
}

func TestSearch_RadiusCutAndOrdering(t *testing.T) {
	raw := append(rawFixture(), places.RawPlace{
		// top-rated but ~3km out; must not survive the radius cut
		PlaceID: "p5", Name: "Far Roasters", Lat: 40.9700, Lng: 29.0600,
		Rating: 5.0, UserRatings: 10,
	})
	ms, _ := newTestMapService(&fakePlacesAPI{raw: raw})
	session := ms.CreateSession(40.991, 29.027)

	result, err := ms.Search(context.Background(), session.ID, SearchRequest{Radius: 500})
	if err != nil {
		t.Fatal(err)
	}

	wantOrder := []string{"p2", "p4", "p1"}
	if len(result.Visible) != len(wantOrder) {
		t.Fatalf("visible = %d cafes; want %d", len(result.Visible), len(wantOrder))
	}
	for i, want := range wantOrder {
		if result.Visible[i].ID != want {
			t.Errorf("Visible[%d].ID = %s; want %s", i, result.Visible[i].ID, want)
		}
	}
	if result.Message != "" {
		t.Errorf("unexpected message %q", result.Message)
	}
	if result.Circle == nil {
		t.Fatal("expected a radius circle overlay")
	}
	if len(result.Circle.Coordinates[0]) != 65 {
		t.Errorf("circle ring has %d vertices; want 65", len(result.Circle.Coordinates[0]))
	}
}

func TestSearch_RadiusOffHasNoOverlay(t *testing.T) {
	ms, _ := newTestMapService(&fakePlacesAPI{raw: rawFixture()})
	session := ms.CreateSession(40.991, 29.027)

	result, err := ms.Search(context.Background(), session.ID, SearchRequest{Radius: 0})
	if err != nil {
		t.Fatal(err)
	}
	if result.Circle != nil {
		t.Error("expected no circle overlay with radius off")
	}
}

func TestSearch_ShrinkingRadiusReusesFetch(t *testing.T) {
	api := &fakePlacesAPI{raw: rawFixture()}
	ms, _ := newTestMapService(api)
	session := ms.CreateSession(40.991, 29.027)

	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 1000})
	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 500})

	if api.calls != 1 {
		t.Errorf("expected 1 provider call after shrinking; got %d", api.calls)
	}

	// growing the radius needs a fresh fetch
	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 2000})
	if api.calls != 2 {
		t.Errorf("expected 2 provider calls after growing; got %d", api.calls)
	}

	// shrinking again reuses the wider fetch
	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 1000})
	if api.calls != 2 {
		t.Errorf("expected the wider fetch to be reused; got %d calls", api.calls)
	}
}

func TestSearch_MovedPinRefetches(t *testing.T) {
	api := &fakePlacesAPI{raw: rawFixture()}
	ms, _ := newTestMapService(api)
	session := ms.CreateSession(40.991, 29.027)

	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 1000})
	ms.Search(context.Background(), session.ID, SearchRequest{
		Radius: 500,
		Pin:    &models.Coordinates{Lat: 40.995, Lng: 29.035},
	})

	if api.calls != 2 {
		t.Errorf("expected a refetch after moving the pin; got %d calls", api.calls)
	}

	restored, _ := ms.GetSession(session.ID)
	if !restored.HasPinBeenPlaced {
		t.Error("pin should be marked placed")
	}
}

func TestSearch_ForceAlwaysFetches(t *testing.T) {
	api := &fakePlacesAPI{raw: rawFixture()}
	ms, _ := newTestMapService(api)
	session := ms.CreateSession(40.991, 29.027)

	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 1000})
	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 1000, Force: true})

	// the places cache still absorbs the repeat, but the session path went
	// to the service both times
	if api.calls != 1 {
		t.Errorf("expected the places cache to serve the forced repeat; got %d calls", api.calls)
	}
}

func TestSearch_EmptyRadiusMessage(t *testing.T) {
	// all results ~1km out
	raw := []places.RawPlace{
		{PlaceID: "far1", Name: "Uzak Kahve", Lat: 41.000, Lng: 29.027, Rating: 4.5, UserRatings: 50},
	}
	ms, _ := newTestMapService(&fakePlacesAPI{raw: raw})
	session := ms.CreateSession(40.991, 29.027)

	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 2000})
	result, err := ms.Search(context.Background(), session.ID, SearchRequest{Radius: 500})
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Visible) != 0 {
		t.Fatalf("expected no visible cafes; got %d", len(result.Visible))
	}
	if result.Message != MSG_NO_CAFES_IN_RADIUS {
		t.Errorf("Message = %q; want %q", result.Message, MSG_NO_CAFES_IN_RADIUS)
	}
}

func TestSearch_EmptyAreaMessage(t *testing.T) {
	// provider only returns a zero-review entry, which normalization drops
	raw := []places.RawPlace{
		{PlaceID: "ghost", Name: "Ghost Espresso", Lat: 40.9905, Lng: 29.0260},
	}
	ms, _ := newTestMapService(&fakePlacesAPI{raw: raw})
	session := ms.CreateSession(40.991, 29.027)

	result, err := ms.Search(context.Background(), session.ID, SearchRequest{Radius: 500})
	if err != nil {
		t.Fatal(err)
	}
	if result.Message != MSG_NO_CAFES_IN_AREA {
		t.Errorf("Message = %q; want %q", result.Message, MSG_NO_CAFES_IN_AREA)
	}
}

func TestSearch_ProviderFailureMessage(t *testing.T) {
	ms, _ := newTestMapService(&fakePlacesAPI{err: errors.New("quota exceeded")})
	session := ms.CreateSession(40.991, 29.027)

	result, err := ms.Search(context.Background(), session.ID, SearchRequest{Radius: 500})
	if err != nil {
		t.Fatal(err)
	}
	if result.Message != MSG_SEARCH_FAILED {
		t.Errorf("Message = %q; want %q", result.Message, MSG_SEARCH_FAILED)
	}
}

func TestSearch_FiltersApply(t *testing.T) {
	api := &fakePlacesAPI{raw: rawFixture()}
	ms, _ := newTestMapService(api)
	session := ms.CreateSession(40.991, 29.027)

	result, err := ms.Search(context.Background(), session.ID, SearchRequest{
		Radius:  2000,
		Filters: []string{"work"},
	})
	if err != nil {
		t.Fatal(err)
	}

	// the provider query carries the filter's primary term
	if api.lastKeyword != "work" {
		t.Errorf("lastKeyword = %q; want %q", api.lastKeyword, "work")
	}

	// Brew & Bloom and Nevada Coffee qualify on reputation, The Loft Work
	// on its name; the zero-review entry drops out
	wantIDs := []string{"p2", "p4", "p1"}
	if len(result.Visible) != len(wantIDs) {
		t.Fatalf("visible = %+v; want %v", result.Visible, wantIDs)
	}
	for i, want := range wantIDs {
		if result.Visible[i].ID != want {
			t.Errorf("Visible[%d].ID = %s; want %s", i, result.Visible[i].ID, want)
		}
	}
}

func TestMarkers_ClusterOnlyAtLargestRadius(t *testing.T) {
	ms, _ := newTestMapService(&fakePlacesAPI{raw: rawFixture()})
	session := ms.CreateSession(40.991, 29.027)
	bbox := models.BoundingBox{LatMin: 40.90, LatMax: 41.05, LngMin: 28.95, LngMax: 29.10}

	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 2000})
	markers, err := ms.Markers(session.ID, bbox, 11)
	if err != nil {
		t.Fatal(err)
	}
	clustered := false
	for _, m := range markers {
		if m.Cluster {
			clustered = true
		}
	}
	if !clustered {
		t.Error("expected clustering at the 2000m tier and low zoom")
	}

	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 500})
	markers, err = ms.Markers(session.ID, bbox, 11)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range markers {
		if m.Cluster {
			t.Error("smaller radius tiers must not cluster")
		}
	}
}

func TestRoute_PlanAndBounds(t *testing.T) {
	ms, _ := newTestMapService(&fakePlacesAPI{raw: rawFixture()})
	session := ms.CreateSession(40.991, 29.027)
	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 2000})

	plan, err := ms.Route(context.Background(), session.ID, "p4")
	if err != nil {
		t.Fatal(err)
	}
	if plan == nil {
		t.Fatal("expected a route plan")
	}
	if plan.Destination != (models.Coordinates{Lat: 40.9931, Lng: 29.0312}) {
		t.Errorf("Destination = %+v", plan.Destination)
	}
	if plan.DistanceMeters <= 0 {
		t.Error("expected a positive route distance")
	}
	if !plan.Bounds.Contains(40.991, 29.027) || !plan.Bounds.Contains(40.9931, 29.0312) {
		t.Error("route bounds must cover both endpoints")
	}
}

func TestRoute_FailureYieldsNoOverlay(t *testing.T) {
	ms, routing := newTestMapService(&fakePlacesAPI{raw: rawFixture()})
	session := ms.CreateSession(40.991, 29.027)
	ms.Search(context.Background(), session.ID, SearchRequest{Radius: 2000})

	routing.Err = errors.New("no route")

	plan, err := ms.Route(context.Background(), session.ID, "p4")
	if err != nil {
		t.Fatalf("routing failures must not surface as errors; got %v", err)
	}
	if plan != nil {
		t.Error("expected no route plan on failure")
	}
}

func TestRoute_UnknownCafe(t *testing.T) {
	ms, _ := newTestMapService(&fakePlacesAPI{raw: rawFixture()})
	session := ms.CreateSession(40.991, 29.027)

	if _, err := ms.Route(context.Background(), session.ID, "nope"); err == nil {
		t.Error("expected an error for a cafe outside the fetched set")
	}
}
