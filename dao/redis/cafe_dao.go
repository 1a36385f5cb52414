package redis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"loca-server/db"
	"loca-server/models"
)

const CAFES_GEO_KEY_V1 = "cafes_geo_v1"
const CAFES_GEO_MEMBER_FORMAT_V1 = "cafes_geo_place_v1:%s"

// CAMPAIGN_CLAIMS_KEY_FORMAT counts claims per campaign.
const CAMPAIGN_CLAIMS_KEY_FORMAT = "campaign_claims_v1:%s"

// FAVORITES_KEY_FORMAT holds a user's favorite cafe ids as a JSON array.
const FAVORITES_KEY_FORMAT = "favorites_v1:%s"

// CafeDAO handles cafe catalog, loyalty, and campaign-claim state in Redis.
type CafeDAO struct {
	client db.RedisClient
}

// NewCafeDAO initializes a CafeDAO with the Redis client.
func NewCafeDAO(client db.RedisClient) *CafeDAO {
	return &CafeDAO{client: client}
}

// UpsertCafe stores the cafe in the geo index with its JSON payload.
func (dao *CafeDAO) UpsertCafe(c models.Cafe) error {
	ctx := dao.client.GetContext()
	memberKey := fmt.Sprintf(CAFES_GEO_MEMBER_FORMAT_V1, c.ID)
	return dao.client.AddLocationWithJSON(ctx, CAFES_GEO_KEY_V1, memberKey, c.Coordinates.Lat, c.Coordinates.Lng, c)
}

// GetCafe retrieves a single cafe by id.
func (dao *CafeDAO) GetCafe(cafeID string) (*models.Cafe, error) {
	memberKey := fmt.Sprintf(CAFES_GEO_MEMBER_FORMAT_V1, cafeID)
	raw, err := dao.client.Get(memberKey)
	if err != nil {
		return nil, fmt.Errorf("cafe %s not found: %w", cafeID, err)
	}
	var c models.Cafe
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cafe JSON: %w", err)
	}
	return &c, nil
}

// GetNearbyCafes retrieves cafes within radiusMeters of the point.
func (dao *CafeDAO) GetNearbyCafes(lat, lng, radiusMeters float64) ([]models.Cafe, error) {
	payloads, err := dao.client.GetLocationsWithinRadius(CAFES_GEO_KEY_V1, lat, lng, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("[CafeDAO] failed to get cafes: %w", err)
	}

	cafes := make([]models.Cafe, len(payloads))
	for i, payload := range payloads {
		if err := json.Unmarshal([]byte(payload), &cafes[i]); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cafe JSON: %w", err)
		}
	}
	return cafes, nil
}

// ListAllCafeIDs returns all cafe ids present in the geo index.
func (dao *CafeDAO) ListAllCafeIDs() ([]string, error) {
	pattern := fmt.Sprintf(CAFES_GEO_MEMBER_FORMAT_V1, "*")
	keys, err := dao.client.Keys(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list cafe keys: %w", err)
	}
	prefix := fmt.Sprintf(CAFES_GEO_MEMBER_FORMAT_V1, "")
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, prefix))
	}
	return ids, nil
}

// JoinCafe marks the cafe's loyalty program as joined.
func (dao *CafeDAO) JoinCafe(cafeID string) (*models.Cafe, error) {
	c, err := dao.GetCafe(cafeID)
	if err != nil {
		return nil, err
	}
	c.IsJoined = true
	if err := dao.UpsertCafe(*c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddStamp records a check-in: one more stamp up to the required count,
// plus loyalty points. Not transactional; loyalty consistency is best-effort.
func (dao *CafeDAO) AddStamp(cafeID string, points int) (*models.Cafe, error) {
	c, err := dao.GetCafe(cafeID)
	if err != nil {
		return nil, err
	}
	if !c.IsJoined {
		return nil, fmt.Errorf("cafe %s loyalty program not joined", cafeID)
	}
	if c.Stamps < c.MaxStamps {
		c.Stamps++
	}
	c.Points += points
	if err := dao.UpsertCafe(*c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetClaimCount returns the number of recorded claims for a campaign.
func (dao *CafeDAO) GetClaimCount(campaignID string) (int, error) {
	key := fmt.Sprintf(CAMPAIGN_CLAIMS_KEY_FORMAT, campaignID)
	raw, err := dao.client.Get(key)
	if err != nil {
		// No key yet means no claims.
		return 0, nil
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("claim count for %s is not an integer: %w", campaignID, err)
	}
	return count, nil
}

// IncrClaimCount records one more claim and returns the new total.
func (dao *CafeDAO) IncrClaimCount(campaignID string) (int, error) {
	key := fmt.Sprintf(CAMPAIGN_CLAIMS_KEY_FORMAT, campaignID)
	count, err := dao.client.Incr(key)
	if err != nil {
		return 0, fmt.Errorf("failed to increment claims for %s: %w", campaignID, err)
	}
	return int(count), nil
}

// DecrClaimCount rolls back one claim, used when a claim taken past the
// campaign limit is handed back.
func (dao *CafeDAO) DecrClaimCount(campaignID string) (int, error) {
	key := fmt.Sprintf(CAMPAIGN_CLAIMS_KEY_FORMAT, campaignID)
	count, err := dao.client.Decr(key)
	if err != nil {
		return 0, fmt.Errorf("failed to decrement claims for %s: %w", campaignID, err)
	}
	return int(count), nil
}

// GetFavorites returns the favorite cafe ids for a user.
func (dao *CafeDAO) GetFavorites(userID string) ([]string, error) {
	key := fmt.Sprintf(FAVORITES_KEY_FORMAT, userID)
	raw, err := dao.client.Get(key)
	if err != nil {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("failed to unmarshal favorites: %w", err)
	}
	return ids, nil
}

// ToggleFavorite adds or removes a cafe from a user's favorites and
// returns the updated list.
func (dao *CafeDAO) ToggleFavorite(userID, cafeID string) ([]string, error) {
	ids, err := dao.GetFavorites(userID)
	if err != nil {
		return nil, err
	}

	found := false
	next := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		if id == cafeID {
			found = true
			continue
		}
		next = append(next, id)
	}
	if !found {
		next = append(next, cafeID)
	}

	data, err := json.Marshal(next)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal favorites: %w", err)
	}
	key := fmt.Sprintf(FAVORITES_KEY_FORMAT, userID)
	if err := dao.client.Set(key, string(data)); err != nil {
		return nil, fmt.Errorf("failed to store favorites: %w", err)
	}
	return next, nil
}
