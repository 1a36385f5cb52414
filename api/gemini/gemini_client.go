package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"loca-server/api"
	"loca-server/config"
	"loca-server/models"
)

// Request/response shapes of the generateContent REST endpoint, reduced to
// the fields this gateway uses.

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
	Tools            []map[string]any  `json:"tools,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					Title string `json:"title"`
					URI   string `json:"uri"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// journeySchema constrains the model to the JourneySummary shape.
var journeySchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"summary": {"type": "STRING", "description": "Short, pithy summary as a companion (max 150 chars)."},
		"distance_km": {"type": "NUMBER", "description": "Estimated distance traveled today in km."},
		"neighborhoods": {"type": "STRING", "description": "Neighborhoods visited (e.g., 'Kadıköy, Moda')."},
		"venue_count": {"type": "INTEGER", "description": "Total venues visited."},
		"is_routine_change": {"type": "BOOLEAN", "description": "Whether today's route is significantly different from a typical day."},
		"interactive_prompt": {"type": "STRING", "description": "A punchy question or action if routine changed."}
	},
	"required": ["summary", "distance_km", "neighborhoods", "venue_count", "is_routine_change"]
}`)

// GeminiClient embeds the common HTTPClient
type GeminiClient struct {
	*api.HTTPClient
	apiKey string
	model  string
}

// NewGeminiClient creates a new instance of GeminiClient
func NewGeminiClient(httpClient *api.HTTPClient) *GeminiClient {
	return &GeminiClient{
		HTTPClient: httpClient,
		model:      config.GEMINI_MODEL,
	}
}

func (c *GeminiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

// SummarizeJourney asks the model for a structured summary of the day's
// check-ins.
func (c *GeminiClient) SummarizeJourney(ctx context.Context, checkIns []models.CheckIn) (*models.JourneySummary, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	names := make([]string, 0, len(checkIns))
	addresses := make([]string, 0, len(checkIns))
	for _, ci := range checkIns {
		names = append(names, ci.Name)
		addresses = append(addresses, ci.Address)
	}

	prompt := fmt.Sprintf(
		"Analyze this user's daily coffee trail: Venues: %s. Locations: %s. "+
			"Calculate stats and provide a pithy, companion-like summary. "+
			"If the locations suggest a city/neighborhood jump (e.g., Kadıköy to Beşiktaş), flag it as a routine change.",
		strings.Join(names, ", "), strings.Join(addresses, " | "),
	)

	request := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   journeySchema,
		},
	}

	var response generateResponse
	if err := c.RequestContext(ctx, "POST", c.endpoint(), nil, request, &response); err != nil {
		return nil, err
	}

	text, err := responseText(&response)
	if err != nil {
		return nil, err
	}

	var summary models.JourneySummary
	if err := json.Unmarshal([]byte(text), &summary); err != nil {
		return nil, fmt.Errorf("malformed summary payload: %w", err)
	}
	return &summary, nil
}

// TrendingCafes asks the model, with search grounding enabled, for the
// month's trending coffee shops around a location.
func (c *GeminiClient) TrendingCafes(ctx context.Context, location string) (*models.TrendingReport, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not configured")
	}
	if location == "" {
		location = "Istanbul"
	}

	prompt := fmt.Sprintf(
		"Find the top 5 trending, newly opened, or most reviewed coffee shops in %s for this month. "+
			"Focus on places with unique concepts or high work-friendliness ratings. "+
			"Provide a list with name, description, and why they are trending.",
		location,
	)

	request := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
		Tools:    []map[string]any{{"googleSearch": map[string]any{}}},
	}

	var response generateResponse
	if err := c.RequestContext(ctx, "POST", c.endpoint(), nil, request, &response); err != nil {
		return nil, err
	}

	text, err := responseText(&response)
	if err != nil {
		return nil, err
	}

	report := &models.TrendingReport{Text: text, Links: []models.GroundingLink{}}
	if gm := response.Candidates[0].GroundingMetadata; gm != nil {
		for _, chunk := range gm.GroundingChunks {
			link := models.GroundingLink{Title: "Source", URI: "#"}
			if chunk.Web != nil {
				if chunk.Web.Title != "" {
					link.Title = chunk.Web.Title
				}
				if chunk.Web.URI != "" {
					link.URI = chunk.Web.URI
				}
			}
			report.Links = append(report.Links, link)
		}
	}
	return report, nil
}

func (c *GeminiClient) endpoint() string {
	return fmt.Sprintf("/models/%s:generateContent?key=%s", c.model, c.apiKey)
}

func responseText(response *generateResponse) (string, error) {
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}
