package util

import (
	"fmt"
	"log"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"loca-server/models"
)

// PlotSearchArea generates an HTML file rendering the active search circle
// and the cafes inside it, for eyeballing radius-search results.
func PlotSearchArea(center models.Coordinates, radiusMeters float64, cafes []models.Cafe) {
	circle := CirclePolygon(center.Lat, center.Lng, radiusMeters)

	ring := make([]opts.GeoData, 0, len(circle.Coordinates[0]))
	for _, pt := range circle.Coordinates[0] {
		ring = append(ring, opts.GeoData{Name: "r", Value: []float64{pt[0], pt[1]}})
	}

	points := make([]opts.GeoData, 0, len(cafes))
	for _, c := range cafes {
		points = append(points, opts.GeoData{
			Name:  c.Name,
			Value: []float64{c.Coordinates.Lng, c.Coordinates.Lat},
		})
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Search Area Map",
			Width:     "800px",
			Height:    "600px",
		}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
	)

	geo.AddSeries("SearchRadius", types.ChartScatter, ring)
	geo.AddSeries("Cafes", types.ChartScatter, points,
		charts.WithLabelOpts(opts.Label{
			Show:      opts.Bool(true),
			Formatter: "{b}",
		}),
	)

	f, err := os.Create("search_area_map.html")
	if err != nil {
		log.Fatalf("Failed to create HTML file: %v", err)
	}
	defer f.Close()

	if err := geo.Render(f); err != nil {
		log.Fatalf("Failed to render chart: %v", err)
	}

	fmt.Println("Search area map generated: search_area_map.html")
}
