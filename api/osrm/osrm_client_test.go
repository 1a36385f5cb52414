package osrm

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "loca-server/api"
)

func TestRoute(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Method != "GET" {
            t.Errorf("expected GET; got %s", r.Method)
        }
        // waypoints come in lng,lat order
        if !strings.HasPrefix(r.URL.Path, "/route/v1/driving/29.025900,40.986200;29.030100,40.990100") {
            t.Errorf("unexpected path %s", r.URL.Path)
        }
        if r.URL.Query().Get("overview") != "full" {
            t.Errorf("overview = %q; want full", r.URL.Query().Get("overview"))
        }
        if r.URL.Query().Get("geometries") != "geojson" {
            t.Errorf("geometries = %q; want geojson", r.URL.Query().Get("geometries"))
        }

        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(map[string]interface{}{
            "code": "Ok",
            "routes": []map[string]interface{}{
                {
                    "geometry": map[string]interface{}{
                        "type": "LineString",
                        "coordinates": [][2]float64{
                            {29.0259, 40.9862},
                            {29.0280, 40.9881},
                            {29.0301, 40.9901},
                        },
                    },
                    "distance": 612.4,
                    "duration": 95.2,
                },
            },
        })
    }))
    defer srv.Close()

    client := NewOSRMClient(api.NewHTTPClient(srv.URL))

    got, err := client.Route(context.Background(), 40.9862, 29.0259, 40.9901, 29.0301)
    if err != nil {
        t.Fatal(err)
    }
    if len(got.Line.Coordinates) != 3 {
        t.Errorf("expected 3 line vertices; got %d", len(got.Line.Coordinates))
    }
    if got.DistanceMeters != 612.4 {
        t.Errorf("DistanceMeters = %v; want 612.4", got.DistanceMeters)
    }
    if got.DurationSeconds != 95.2 {
        t.Errorf("DurationSeconds = %v; want 95.2", got.DurationSeconds)
    }
}

func TestRoute_NoRoute(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(map[string]interface{}{"code": "NoRoute"})
    }))
    defer srv.Close()

    client := NewOSRMClient(api.NewHTTPClient(srv.URL))

    if _, err := client.Route(context.Background(), 40.9, 29.0, 41.0, 29.1); err == nil {
        t.Error("expected an error for a NoRoute response")
    }
}

func TestRouteMock_StraightLine(t *testing.T) {
    client := NewOSRMClientMock()

    got, err := client.Route(context.Background(), 40.9862, 29.0259, 40.9901, 29.0301)
    if err != nil {
        t.Fatal(err)
    }
    if len(got.Line.Coordinates) != 2 {
        t.Fatalf("expected 2 vertices; got %d", len(got.Line.Coordinates))
    }
    if got.Line.Coordinates[0] != [2]float64{29.0259, 40.9862} {
        t.Errorf("unexpected start vertex %v", got.Line.Coordinates[0])
    }
    if got.DistanceMeters <= 0 {
        t.Errorf("expected a positive distance; got %v", got.DistanceMeters)
    }
}
