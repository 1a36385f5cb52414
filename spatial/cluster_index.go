package spatial

import (
	"sort"
	"sync"

	"github.com/asim/quadtree"

	"loca-server/models"
)

const (
	// MAX_CLUSTER_ZOOM is the last zoom level at which markers still group;
	// past it every venue renders individually.
	MAX_CLUSTER_ZOOM = 16

	// CLUSTER_RADIUS_PIXELS is the screen-space grouping radius.
	CLUSTER_RADIUS_PIXELS = 40.0

	tileSizePixels = 256.0
)

// ClusterIndex holds the current filtered café set in a quadtree and answers
// viewport marker queries, grouping nearby venues into clusters below the
// max cluster zoom. Rebuilt whenever the filtered list changes.
type ClusterIndex struct {
	mu    sync.RWMutex
	qtree *quadtree.QuadTree
	size  int
}

// NewClusterIndex creates an empty index.
func NewClusterIndex() *ClusterIndex {
	idx := &ClusterIndex{}
	idx.reset()
	return idx
}

func (idx *ClusterIndex) reset() {
	// Whole-world boundary (lat ±90, lng ±180)
	center := quadtree.NewPoint(0, 0, nil)
	half := quadtree.NewPoint(90, 180, nil)
	idx.qtree = quadtree.New(quadtree.NewAABB(center, half), 0, nil)
	idx.size = 0
}

// Rebuild replaces the indexed set.
func (idx *ClusterIndex) Rebuild(cafes []models.Cafe) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.reset()
	for i := range cafes {
		c := cafes[i]
		idx.qtree.Insert(quadtree.NewPoint(c.Coordinates.Lat, c.Coordinates.Lng, &c))
	}
	idx.size = len(cafes)
}

// Size returns the number of indexed cafés.
func (idx *ClusterIndex) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.size
}

// MarkersFor returns the markers visible inside the bounding box at the
// given zoom. Above MAX_CLUSTER_ZOOM each café gets its own marker;
// otherwise venues closer than the grouping radius merge into cluster
// markers carrying a count and the zoom at which they break apart.
func (idx *ClusterIndex) MarkersFor(bbox models.BoundingBox, zoom int) []models.Marker {
	cafes := idx.searchBox(bbox)

	if zoom > MAX_CLUSTER_ZOOM {
		markers := make([]models.Marker, 0, len(cafes))
		for _, c := range cafes {
			markers = append(markers, singleMarker(c))
		}
		return markers
	}

	radiusDeg := clusterRadiusDegrees(zoom)
	markers := make([]models.Marker, 0, len(cafes))
	used := make(map[string]bool, len(cafes))

	for _, c := range cafes {
		if used[c.ID] {
			continue
		}
		used[c.ID] = true

		group := []models.Cafe{c}
		for _, other := range cafes {
			if used[other.ID] {
				continue
			}
			if absFloat(other.Coordinates.Lat-c.Coordinates.Lat) <= radiusDeg &&
				absFloat(other.Coordinates.Lng-c.Coordinates.Lng) <= radiusDeg {
				used[other.ID] = true
				group = append(group, other)
			}
		}

		if len(group) == 1 {
			markers = append(markers, singleMarker(c))
			continue
		}

		var latSum, lngSum, spread float64
		for _, g := range group {
			latSum += g.Coordinates.Lat
			lngSum += g.Coordinates.Lng
			d := absFloat(g.Coordinates.Lat - c.Coordinates.Lat)
			if dl := absFloat(g.Coordinates.Lng - c.Coordinates.Lng); dl > d {
				d = dl
			}
			if d > spread {
				spread = d
			}
		}
		markers = append(markers, models.Marker{
			Cluster:       true,
			Count:         len(group),
			ExpansionZoom: expansionZoom(zoom, spread),
			Coordinates: models.Coordinates{
				Lat: latSum / float64(len(group)),
				Lng: lngSum / float64(len(group)),
			},
		})
	}
	return markers
}

func (idx *ClusterIndex) searchBox(bbox models.BoundingBox) []models.Cafe {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	center := quadtree.NewPoint(
		(bbox.LatMin+bbox.LatMax)/2,
		(bbox.LngMin+bbox.LngMax)/2,
		nil,
	)
	half := quadtree.NewPoint(
		(bbox.LatMax-bbox.LatMin)/2,
		(bbox.LngMax-bbox.LngMin)/2,
		nil,
	)
	points := idx.qtree.Search(quadtree.NewAABB(center, half))

	cafes := make([]models.Cafe, 0, len(points))
	for _, pt := range points {
		if c, ok := pt.Data().(*models.Cafe); ok {
			if bbox.Contains(c.Coordinates.Lat, c.Coordinates.Lng) {
				cafes = append(cafes, *c)
			}
		}
	}
	// stable order keeps clustering deterministic
	sort.Slice(cafes, func(i, j int) bool { return cafes[i].ID < cafes[j].ID })
	return cafes
}

func singleMarker(c models.Cafe) models.Marker {
	return models.Marker{
		CafeID:      c.ID,
		Rating:      c.Rating,
		Coordinates: c.Coordinates,
	}
}

// clusterRadiusDegrees converts the pixel radius to degrees of longitude at
// the given zoom, on a 256px base tile.
func clusterRadiusDegrees(zoom int) float64 {
	worldPixels := tileSizePixels * float64(int(1)<<uint(zoom))
	return CLUSTER_RADIUS_PIXELS / worldPixels * 360.0
}

// expansionZoom finds the first zoom past the query zoom at which the
// cluster's widest pair separates.
func expansionZoom(zoom int, spread float64) int {
	for z := zoom + 1; z <= MAX_CLUSTER_ZOOM; z++ {
		if spread > clusterRadiusDegrees(z) {
			return z
		}
	}
	return MAX_CLUSTER_ZOOM + 1
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
