package spatial

import (
	"testing"

	"loca-server/models"
)

func cafeAt(id string, lat, lng float64, rating float64) models.Cafe {
	return models.Cafe{
		ID:          id,
		Name:        "Cafe " + id,
		Rating:      rating,
		Coordinates: models.Coordinates{Lat: lat, Lng: lng},
	}
}

var modaBox = models.BoundingBox{LatMin: 40.97, LatMax: 41.00, LngMin: 29.01, LngMax: 29.05}

func TestMarkersFor_IndividualAboveMaxZoom(t *testing.T) {
	idx := NewClusterIndex()
	idx.Rebuild([]models.Cafe{
		cafeAt("a", 40.9862, 29.0259, 4.8),
		cafeAt("b", 40.9863, 29.0260, 4.5),
		cafeAt("c", 40.9900, 29.0400, 4.2),
	})

	markers := idx.MarkersFor(modaBox, MAX_CLUSTER_ZOOM+1)

	if len(markers) != 3 {
		t.Fatalf("expected 3 individual markers; got %d", len(markers))
	}
	for _, m := range markers {
		if m.Cluster {
			t.Errorf("marker %s should not be a cluster above max zoom", m.CafeID)
		}
	}
}

func TestMarkersFor_GroupsAtLowZoom(t *testing.T) {
	idx := NewClusterIndex()
	// two cafés ~20m apart plus one far away
	idx.Rebuild([]models.Cafe{
		cafeAt("a", 40.98620, 29.02590, 4.8),
		cafeAt("b", 40.98635, 29.02600, 4.5),
		cafeAt("c", 40.99800, 29.04500, 4.2),
	})

	markers := idx.MarkersFor(modaBox, 12)

	var clusters, singles int
	for _, m := range markers {
		if m.Cluster {
			clusters++
			if m.Count != 2 {
				t.Errorf("cluster count = %d; want 2", m.Count)
			}
			if m.ExpansionZoom <= 12 {
				t.Errorf("ExpansionZoom = %d; want > query zoom", m.ExpansionZoom)
			}
		} else {
			singles++
		}
	}
	if clusters != 1 || singles != 1 {
		t.Errorf("got %d clusters / %d singles; want 1 / 1", clusters, singles)
	}
}

func TestMarkersFor_BoundingBoxFilters(t *testing.T) {
	idx := NewClusterIndex()
	idx.Rebuild([]models.Cafe{
		cafeAt("inside", 40.9862, 29.0259, 4.8),
		cafeAt("outside", 41.10, 29.20, 4.0),
	})

	markers := idx.MarkersFor(modaBox, MAX_CLUSTER_ZOOM+1)

	if len(markers) != 1 {
		t.Fatalf("expected 1 marker inside the box; got %d", len(markers))
	}
	if markers[0].CafeID != "inside" {
		t.Errorf("CafeID = %q; want inside", markers[0].CafeID)
	}
}

func TestRebuild_ReplacesPreviousSet(t *testing.T) {
	idx := NewClusterIndex()
	idx.Rebuild([]models.Cafe{cafeAt("a", 40.9862, 29.0259, 4.8)})
	idx.Rebuild([]models.Cafe{cafeAt("b", 40.9870, 29.0270, 4.1)})

	if idx.Size() != 1 {
		t.Fatalf("Size = %d; want 1", idx.Size())
	}
	markers := idx.MarkersFor(modaBox, MAX_CLUSTER_ZOOM+1)
	if len(markers) != 1 || markers[0].CafeID != "b" {
		t.Errorf("expected only café b after rebuild; got %+v", markers)
	}
}
