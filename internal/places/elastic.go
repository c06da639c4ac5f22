package places

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/olivere/elastic/v7"

	"github.com/ghfreaks/eventlocator/internal/metrics"
	"github.com/ghfreaks/eventlocator/internal/model"
)

const (
	// DefaultIndex is the Elasticsearch index holding places.
	DefaultIndex = "places"
	// DefaultLimit caps the number of search results.
	DefaultLimit = 25
)

// indexMapping maps location as geo_point so results can be sorted by distance.
const indexMapping = `{
	"settings": {"number_of_shards": 1},
	"mappings": {
		"properties": {
			"name":       {"type": "text"},
			"address":    {"type": "text"},
			"location":   {"type": "geo_point"},
			"look_around": {"type": "keyword", "index": false}
		}
	}
}`

// placeDoc is the stored document shape.
type placeDoc struct {
	Name       string         `json:"name"`
	Address    string         `json:"address,omitempty"`
	Location   model.GeoPoint `json:"location"`
	LookAround string         `json:"look_around,omitempty"`
}

// ElasticSearcher implements Searcher on an Elasticsearch index.
type ElasticSearcher struct {
	client  *elastic.Client
	index   string
	region  Region
	limit   int
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewElasticClient connects to Elasticsearch at url without sniffing, which
// keeps it usable behind proxies and single-node setups.
func NewElasticClient(url string) (*elastic.Client, error) {
	client, err := elastic.NewClient(
		elastic.SetURL(url),
		elastic.SetSniff(false),
		elastic.SetHealthcheck(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	return client, nil
}

// NewElasticSearcher creates an ElasticSearcher. Empty index uses DefaultIndex.
func NewElasticSearcher(client *elastic.Client, index string, region Region, logger *slog.Logger, recorder metrics.Recorder) *ElasticSearcher {
	if index == "" {
		index = DefaultIndex
	}
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &ElasticSearcher{
		client:  client,
		index:   index,
		region:  region,
		limit:   DefaultLimit,
		logger:  logger,
		metrics: recorder,
	}
}

// Ping checks that the index is reachable.
func (s *ElasticSearcher) Ping(ctx context.Context) error {
	_, err := s.client.IndexExists(s.index).Do(ctx)
	return err
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (s *ElasticSearcher) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.IndexExists(s.index).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check index: %w", err)
	}
	if exists {
		return nil
	}

	created, err := s.client.CreateIndex(s.index).BodyString(indexMapping).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !created.Acknowledged {
		s.logger.Warn("places_index_not_acknowledged", "index", s.index)
	}

	s.logger.Info("places_index_created", "index", s.index)
	return nil
}

// Search runs a free-text query over name and address, nearest first.
// An empty query returns no results without contacting the index.
func (s *ElasticSearcher) Search(ctx context.Context, query string) ([]model.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.Place{}, nil
	}

	boolQuery := elastic.NewBoolQuery().
		Must(elastic.NewMultiMatchQuery(query, "name^2", "address").Fuzziness("AUTO"))
	if s.region.RadiusMeters > 0 {
		boolQuery = boolQuery.Filter(elastic.NewGeoDistanceQuery("location").
			Lat(s.region.Center.Lat).
			Lon(s.region.Center.Lon).
			Distance(strconv.FormatFloat(s.region.RadiusMeters, 'f', -1, 64) + "m"))
	}

	result, err := s.client.Search().
		Index(s.index).
		Query(boolQuery).
		SortBy(elastic.NewGeoDistanceSort("location").
			Point(s.region.Center.Lat, s.region.Center.Lon).
			Asc().
			Unit("m").
			DistanceType("arc").
			IgnoreUnmapped(true)).
		Size(s.limit).
		Do(ctx)
	if err != nil {
		s.metrics.IncPlaceSearch("failed")
		return nil, fmt.Errorf("place search failed: %w", err)
	}

	places := make([]model.Place, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		var doc placeDoc
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			s.logger.Warn("places_hit_skipped", "place_id", hit.Id, "error", err)
			continue
		}
		places = append(places, doc.toPlace(hit.Id))
	}

	s.metrics.IncPlaceSearch("success")
	s.logger.Debug("places_searched", "query", query, "results", len(places))
	return places, nil
}

// LookAround returns the preview handle of a place.
func (s *ElasticSearcher) LookAround(ctx context.Context, placeID string) (*model.LookAroundPreview, error) {
	result, err := s.client.Get().Index(s.index).Id(placeID).Do(ctx)
	if err != nil {
		if elastic.IsNotFound(err) {
			return nil, ErrPlaceNotFound
		}
		return nil, fmt.Errorf("place lookup failed: %w", err)
	}
	if !result.Found {
		return nil, ErrPlaceNotFound
	}

	var doc placeDoc
	if err := json.Unmarshal(result.Source, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode place %s: %w", placeID, err)
	}
	if doc.LookAround == "" {
		return nil, ErrNoPreview
	}

	return &model.LookAroundPreview{PlaceID: placeID, Scene: doc.LookAround}, nil
}

// IndexPlaces bulk-indexes places, keyed by their ID.
func (s *ElasticSearcher) IndexPlaces(ctx context.Context, places []model.Place) error {
	if len(places) == 0 {
		return nil
	}

	bulk := s.client.Bulk().Index(s.index).Refresh("true")
	for _, p := range places {
		bulk.Add(elastic.NewBulkIndexRequest().Id(p.ID).Doc(fromPlace(p)))
	}

	resp, err := bulk.Do(ctx)
	if err != nil {
		return fmt.Errorf("bulk index failed: %w", err)
	}

	failed := resp.Failed()
	for _, item := range failed {
		if item.Error != nil {
			s.logger.Warn("places_index_item_failed", "place_id", item.Id, "reason", item.Error.Reason)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("bulk index: %d of %d places failed", len(failed), len(places))
	}

	return nil
}

func (d placeDoc) toPlace(id string) model.Place {
	return model.Place{
		ID:            id,
		Name:          d.Name,
		Address:       d.Address,
		Location:      d.Location,
		PreviewHandle: d.LookAround,
	}
}

func fromPlace(p model.Place) placeDoc {
	return placeDoc{
		Name:       p.Name,
		Address:    p.Address,
		Location:   p.Location,
		LookAround: p.PreviewHandle,
	}
}
