package taxonomy

import (
	"context"
	"net/url"
	"time"

	"careport/internal/api"
	"careport/internal/cachemanager"
	"careport/internal/log"
)

// Fetcher loads taxonomy data. *Service is the production implementation;
// the interface exists so the registration flow can be driven by fakes.
type Fetcher interface {
	Categories(ctx context.Context) ([]string, error)
	PlayerTypes(ctx context.Context, category string) ([]PlayerType, error)
	PlayerType(ctx context.Context, id ID) (*PlayerType, error)
	Children(ctx context.Context, id ID) ([]PlayerType, error)
	Specializations(ctx context.Context, id ID) ([]Specialization, error)
	Attributes(ctx context.Context, id ID) ([]Attribute, error)
}

// cacheTTL bounds how long category and root-type lists stay warm. Child
// types, specializations, and attributes are always fetched fresh because
// they drive form contents the admin may have just edited.
const cacheTTL = 5 * time.Minute

// Service fetches taxonomy data over the admin API, keeping the rarely
// changing category and root-type lists in a read-through cache.
type Service struct {
	client     *api.Client
	categories *cachemanager.ReadThroughCache[string, []string, struct{}]
	types      *cachemanager.ReadThroughCache[string, []PlayerType, string]
}

func NewService(client *api.Client) *Service {
	s := &Service{client: client}

	s.categories = cachemanager.NewReadThroughCache(
		cachemanager.NewInMemoryCacheManager[string, []string]("taxonomy-categories", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
		func(ctx context.Context, _ struct{}) ([]string, error) {
			return s.fetchCategories(ctx)
		},
		false,
	)
	s.types = cachemanager.NewReadThroughCache(
		cachemanager.NewInMemoryCacheManager[string, []PlayerType]("taxonomy-types", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
		func(ctx context.Context, category string) ([]PlayerType, error) {
			return s.fetchPlayerTypes(ctx, category)
		},
		false,
	)
	return s
}

// Categories lists the known root categories.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.categories.Get(ctx, "categories", struct{}{}, cacheTTL)
}

// PlayerTypes lists root player types, optionally filtered by category.
func (s *Service) PlayerTypes(ctx context.Context, category string) ([]PlayerType, error) {
	return s.types.Get(ctx, "types:"+category, category, cacheTTL)
}

// PlayerType loads a single type node, including whatever children,
// specializations, and attributes the server chose to embed.
func (s *Service) PlayerType(ctx context.Context, id ID) (*PlayerType, error) {
	var pt PlayerType
	if err := s.client.Get(ctx, "/player-types/"+url.PathEscape(id.String()), nil, &pt); err != nil {
		return nil, err
	}
	return &pt, nil
}

// Children lists the child types of id.
func (s *Service) Children(ctx context.Context, id ID) ([]PlayerType, error) {
	var children []PlayerType
	if err := s.client.Get(ctx, "/player-types/"+url.PathEscape(id.String())+"/children", nil, &children); err != nil {
		return nil, err
	}
	return children, nil
}

// Specializations lists the specializations of id.
func (s *Service) Specializations(ctx context.Context, id ID) ([]Specialization, error) {
	var specs []Specialization
	if err := s.client.Get(ctx, "/player-types/"+url.PathEscape(id.String())+"/specializations", nil, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// Attributes lists the dynamic attributes of id.
func (s *Service) Attributes(ctx context.Context, id ID) ([]Attribute, error) {
	var attrs []Attribute
	if err := s.client.Get(ctx, "/player-types/"+url.PathEscape(id.String())+"/attributes", nil, &attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

// Invalidate drops the cached category and root-type lists, forcing the next
// reads to hit the API.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.categories.Flush(ctx); err != nil {
		log.ErrorErr(log.CatCache, "flush categories cache", err)
	}
	if err := s.types.Flush(ctx); err != nil {
		log.ErrorErr(log.CatCache, "flush types cache", err)
	}
}

func (s *Service) fetchCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := s.client.Get(ctx, "/player-types/categories", nil, &categories); err != nil {
		return nil, err
	}
	log.Debug(log.CatTaxonomy, "fetched categories", "count", len(categories))
	return categories, nil
}

func (s *Service) fetchPlayerTypes(ctx context.Context, category string) ([]PlayerType, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", category)
	}
	var types []PlayerType
	if err := s.client.Get(ctx, "/player-types", query, &types); err != nil {
		return nil, err
	}
	log.Debug(log.CatTaxonomy, "fetched player types", "category", category, "count", len(types))
	return types, nil
}
