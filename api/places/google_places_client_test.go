package places

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"

    "loca-server/api"
)

func TestNearbySearch(t *testing.T) {
    var receivedQuery map[string]string

    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.Method != "GET" {
            t.Errorf("expected GET; got %s", r.Method)
        }
        if r.URL.Path != "/nearbysearch/json" {
            t.Errorf("expected path /nearbysearch/json; got %s", r.URL.Path)
        }

        receivedQuery = map[string]string{}
        for k := range r.URL.Query() {
            receivedQuery[k] = r.URL.Query().Get(k)
        }

        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(map[string]interface{}{
            "status": "OK",
            "results": []map[string]interface{}{
                {
                    "place_id": "pl-1",
                    "name":     "Nevada Coffee",
                    "vicinity": "Moda, Kadikoy",
                    "types":    []string{"cafe", "food"},
                    "geometry": map[string]interface{}{
                        "location": map[string]float64{"lat": 40.9856, "lng": 29.0253},
                    },
                    "rating":             4.8,
                    "user_ratings_total": 124,
                    "photos": []map[string]string{
                        {"photo_reference": "ref-abc"},
                    },
                    "opening_hours": map[string]bool{"open_now": true},
                },
                {
                    "place_id": "pl-2",
                    "name":     "Ghost Espresso",
                    "vicinity": "Yeldegirmeni",
                    "geometry": map[string]interface{}{
                        "location": map[string]float64{"lat": 40.9901, "lng": 29.0301},
                    },
                },
            },
        })
    }))
    defer srv.Close()

    client := NewGooglePlacesClient(api.NewHTTPClient(srv.URL))
    client.SetCredentials("secret")

    got, err := client.NearbySearch(context.Background(), 40.9862, 29.0259, 500, "manzara")
    if err != nil {
        t.Fatal(err)
    }

    // verify forced query parameters
    checks := []struct {
        key  string
        want string
    }{
        {"location", "40.986200,29.025900"},
        {"radius", "500"},
        {"type", "cafe"},
        {"key", "secret"},
        {"keyword", "manzara"},
    }
    for _, c := range checks {
        if got := receivedQuery[c.key]; got != c.want {
            t.Errorf("query[%q] = %q; want %q", c.key, got, c.want)
        }
    }

    if len(got) != 2 {
        t.Fatalf("expected 2 places; got %d", len(got))
    }
    first := got[0]
    if first.PlaceID != "pl-1" {
        t.Errorf("PlaceID = %q; want pl-1", first.PlaceID)
    }
    if first.Name != "Nevada Coffee" {
        t.Errorf("Name = %q; want Nevada Coffee", first.Name)
    }
    if first.Rating != 4.8 || first.UserRatings != 124 {
        t.Errorf("rating/reviews = %v/%d; want 4.8/124", first.Rating, first.UserRatings)
    }
    if first.PhotoURL == "" {
        t.Error("expected a photo URL for a result with a photo reference")
    }
    if !first.OpenNow {
        t.Error("expected OpenNow = true")
    }

    // second result has no photos and no opening hours
    second := got[1]
    if second.PhotoURL != "" {
        t.Errorf("expected empty photo URL; got %q", second.PhotoURL)
    }
    if second.OpenNow {
        t.Error("expected OpenNow = false when opening_hours is absent")
    }
}

func TestNearbySearch_ZeroResults(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(map[string]interface{}{"status": "ZERO_RESULTS"})
    }))
    defer srv.Close()

    client := NewGooglePlacesClient(api.NewHTTPClient(srv.URL))
    client.SetCredentials("secret")

    got, err := client.NearbySearch(context.Background(), 41.0, 29.0, 2000, "")
    if err != nil {
        t.Fatal(err)
    }
    if len(got) != 0 {
        t.Errorf("expected no places; got %d", len(got))
    }
}

func TestNearbySearch_ErrorStatus(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(map[string]interface{}{"status": "REQUEST_DENIED"})
    }))
    defer srv.Close()

    client := NewGooglePlacesClient(api.NewHTTPClient(srv.URL))
    client.SetCredentials("bad-key")

    if _, err := client.NearbySearch(context.Background(), 41.0, 29.0, 2000, ""); err == nil {
        t.Error("expected an error for REQUEST_DENIED status")
    }
}

func TestNearbySearch_MissingKey(t *testing.T) {
    client := NewGooglePlacesClient(api.NewHTTPClient("http://unused"))

    if _, err := client.NearbySearch(context.Background(), 41.0, 29.0, 2000, ""); err == nil {
        t.Error("expected an error when no API key is set")
    }
}
