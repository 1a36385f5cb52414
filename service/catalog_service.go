package services

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"loca-server/config"
	"loca-server/dao/redis"
	"loca-server/models"
	"loca-server/util"
)

// ErrCampaignExhausted is returned when a claim arrives after the campaign
// limit has been reached.
var ErrCampaignExhausted = errors.New("campaign claim limit reached")

// CatalogService serves the curated side of the app: the seeded café
// catalog, spotlight collections, editorial picks, campaigns, loyalty and
// favorites. Seed content comes from resource JSON files; campaign claim
// counters live in Redis so they survive restarts.
type CatalogService struct {
	cafeDao *redis.CafeDAO

	mu          sync.RWMutex
	collections []models.Collection
	editorPicks []models.EditorPick
	campaigns   []models.Campaign
}

// NewCatalogService constructs a new CatalogService with Redis dependency injection.
func NewCatalogService(cafeDao *redis.CafeDAO) *CatalogService {
	return &CatalogService{
		cafeDao: cafeDao,
	}
}

// LoadSeedData reads the resource files and upserts the seed cafés into
// the geo index. Call once at startup.
func (cs *CatalogService) LoadSeedData() error {
	cafes, err := util.ReadCafesFromJSON(config.GetResourcePath(config.SEED_CAFES_RESOURCE))
	if err != nil {
		return fmt.Errorf("failed to load seed cafes: %w", err)
	}
	for _, c := range cafes {
		if err := cs.cafeDao.UpsertCafe(c); err != nil {
			log.Printf("[CatalogService] Seed upsert failed for %s: %v", c.ID, err)
		}
	}
	log.Printf("[CatalogService] Seeded %d cafes", len(cafes))

	collections, err := util.ReadCollectionsFromJSON(config.GetResourcePath(config.COLLECTIONS_RESOURCE))
	if err != nil {
		return fmt.Errorf("failed to load collections: %w", err)
	}
	picks, err := util.ReadEditorPicksFromJSON(config.GetResourcePath(config.EDITOR_PICKS_RESOURCE))
	if err != nil {
		return fmt.Errorf("failed to load editor picks: %w", err)
	}
	campaigns, err := util.ReadCampaignsFromJSON(config.GetResourcePath(config.CAMPAIGNS_RESOURCE))
	if err != nil {
		return fmt.Errorf("failed to load campaigns: %w", err)
	}

	cs.mu.Lock()
	cs.collections = collections
	cs.editorPicks = picks
	cs.campaigns = campaigns
	cs.mu.Unlock()

	log.Printf("[CatalogService] Loaded %d collections, %d editor picks, %d campaigns",
		len(collections), len(picks), len(campaigns))
	return nil
}

// Collections returns the spotlight collections in rotation order. When a
// city is given, city-scoped collections for other cities are dropped.
func (cs *CatalogService) Collections(city string) []models.Collection {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	result := make([]models.Collection, 0, len(cs.collections))
	for _, col := range cs.collections {
		if city != "" && col.City != "" && col.City != city {
			continue
		}
		result = append(result, col)
	}
	return result
}

// CollectionCafes resolves a collection's café ids against the catalog.
// Unresolved ids drop silently.
func (cs *CatalogService) CollectionCafes(collectionID string) ([]models.Cafe, error) {
	cs.mu.RLock()
	var target *models.Collection
	for i := range cs.collections {
		if cs.collections[i].ID == collectionID {
			target = &cs.collections[i]
			break
		}
	}
	cs.mu.RUnlock()

	if target == nil {
		return nil, fmt.Errorf("collection %s not found", collectionID)
	}

	cafes := make([]models.Cafe, 0, len(target.CafeIDs))
	for _, id := range target.CafeIDs {
		c, err := cs.cafeDao.GetCafe(id)
		if err != nil {
			log.Printf("[CatalogService] Dropping unresolved cafe %s from collection %s", id, collectionID)
			continue
		}
		cafes = append(cafes, *c)
	}
	return cafes, nil
}

// EditorPicks returns the editorial articles.
func (cs *CatalogService) EditorPicks() []models.EditorPick {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	picks := make([]models.EditorPick, len(cs.editorPicks))
	copy(picks, cs.editorPicks)
	return picks
}

// Campaigns returns the active campaigns with live claim counts folded in.
func (cs *CatalogService) Campaigns() ([]models.Campaign, error) {
	cs.mu.RLock()
	campaigns := make([]models.Campaign, len(cs.campaigns))
	copy(campaigns, cs.campaigns)
	cs.mu.RUnlock()

	for i := range campaigns {
		claims, err := cs.cafeDao.GetClaimCount(campaigns[i].ID)
		if err != nil {
			return nil, err
		}
		campaigns[i].ClaimedCount += claims
	}
	return campaigns, nil
}

// ClaimCampaign records one claim. Claims arriving at or past the limit
// are rejected with ErrCampaignExhausted.
func (cs *CatalogService) ClaimCampaign(campaignID string) (*models.Campaign, error) {
	cs.mu.RLock()
	var target *models.Campaign
	for i := range cs.campaigns {
		if cs.campaigns[i].ID == campaignID {
			campaign := cs.campaigns[i]
			target = &campaign
			break
		}
	}
	cs.mu.RUnlock()

	if target == nil {
		return nil, fmt.Errorf("campaign %s not found", campaignID)
	}

	// Take the claim first and judge the INCR result against the limit;
	// a check-then-increment would let concurrent claims overshoot it.
	newClaims, err := cs.cafeDao.IncrClaimCount(campaignID)
	if err != nil {
		return nil, err
	}
	if target.ClaimedCount+newClaims > target.TotalLimit {
		if _, err := cs.cafeDao.DecrClaimCount(campaignID); err != nil {
			log.Printf("[CatalogService] Failed to hand back claim for %s: %v", campaignID, err)
		}
		return nil, ErrCampaignExhausted
	}
	target.ClaimedCount += newClaims
	return target, nil
}

// CheckIn records a loyalty stamp for a joined café.
func (cs *CatalogService) CheckIn(cafeID string, points int) (*models.Cafe, error) {
	return cs.cafeDao.AddStamp(cafeID, points)
}

// JoinLoyalty enrolls the user in a café's loyalty program.
func (cs *CatalogService) JoinLoyalty(cafeID string) (*models.Cafe, error) {
	return cs.cafeDao.JoinCafe(cafeID)
}

// ToggleFavorite flips a café in the user's favorites and returns the list.
func (cs *CatalogService) ToggleFavorite(userID, cafeID string) ([]string, error) {
	return cs.cafeDao.ToggleFavorite(userID, cafeID)
}

// Favorites resolves the user's favorite cafés. Unresolved ids drop.
func (cs *CatalogService) Favorites(userID string) ([]models.Cafe, error) {
	ids, err := cs.cafeDao.GetFavorites(userID)
	if err != nil {
		return nil, err
	}
	cafes := make([]models.Cafe, 0, len(ids))
	for _, id := range ids {
		c, err := cs.cafeDao.GetCafe(id)
		if err != nil {
			continue
		}
		cafes = append(cafes, *c)
	}
	return cafes, nil
}
