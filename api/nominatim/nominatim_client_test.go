package nominatim

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "loca-server/api"
)

func TestReverseGeocode_IstanbulDistrict(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        if r.URL.Path != "/reverse" {
            t.Errorf("expected path /reverse; got %s", r.URL.Path)
        }
        if r.URL.Query().Get("format") != "jsonv2" {
            t.Errorf("format = %q; want jsonv2", r.URL.Query().Get("format"))
        }
        if r.Header.Get("Accept-Language") != "tr-TR,tr;q=0.9" {
            t.Errorf("unexpected Accept-Language %q", r.Header.Get("Accept-Language"))
        }

        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(map[string]interface{}{
            "address": map[string]string{
                "suburb":   "Moda",
                "province": "İstanbul",
            },
        })
    }))
    defer srv.Close()

    client := NewNominatimClient(api.NewHTTPClient(srv.URL))

    got, err := client.ReverseGeocode(context.Background(), 40.9798, 29.0254)
    if err != nil {
        t.Fatal(err)
    }
    if got != "Moda, İstanbul" {
        t.Errorf("label = %q; want %q", got, "Moda, İstanbul")
    }
}

func TestReverseGeocode_OutsideIstanbul(t *testing.T) {
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(map[string]interface{}{
            "address": map[string]string{
                "city": "Ankara",
            },
        })
    }))
    defer srv.Close()

    client := NewNominatimClient(api.NewHTTPClient(srv.URL))

    got, err := client.ReverseGeocode(context.Background(), 39.92, 32.85)
    if err != nil {
        t.Fatal(err)
    }
    if got != "Ankara" {
        t.Errorf("label = %q; want Ankara", got)
    }
}

func TestReverseGeocode_Throttled(t *testing.T) {
    calls := 0
    srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        calls++
        w.Header().Set("Content-Type", "application/json")
        json.NewEncoder(w).Encode(map[string]interface{}{
            "address": map[string]string{
                "suburb":   "Moda",
                "province": "İstanbul",
            },
        })
    }))
    defer srv.Close()

    now := time.Date(2026, 1, 5, 12, 0, 0, 0, time.UTC)
    client := NewNominatimClient(api.NewHTTPClient(srv.URL))
    client.now = func() time.Time { return now }

    if _, err := client.ReverseGeocode(context.Background(), 40.9798, 29.0254); err != nil {
        t.Fatal(err)
    }

    // a second lookup within the minimum interval reuses the last result
    now = now.Add(3 * time.Second)
    got, err := client.ReverseGeocode(context.Background(), 41.02, 29.01)
    if err != nil {
        t.Fatal(err)
    }
    if got != "Moda, İstanbul" {
        t.Errorf("label = %q; want cached %q", got, "Moda, İstanbul")
    }
    if calls != 1 {
        t.Errorf("expected 1 upstream call; got %d", calls)
    }

    // past the interval the upstream is consulted again
    now = now.Add(15 * time.Second)
    if _, err := client.ReverseGeocode(context.Background(), 41.02, 29.01); err != nil {
        t.Fatal(err)
    }
    if calls != 2 {
        t.Errorf("expected 2 upstream calls; got %d", calls)
    }
}

func TestFormatLabel_MissingDistrictFallsBack(t *testing.T) {
    got := formatLabel(&nominatimAddress{Province: "İstanbul"})
    if got != "İstanbul, İstanbul" {
        t.Errorf("label = %q; want %q", got, "İstanbul, İstanbul")
    }

    got = formatLabel(&nominatimAddress{})
    if got != "Bilinmeyen Konum" {
        t.Errorf("label = %q; want %q", got, "Bilinmeyen Konum")
    }
}
