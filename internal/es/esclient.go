package es

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"

	"github.com/Skotchmaster/catalog_api/internal/events"
	"github.com/Skotchmaster/catalog_api/internal/models"
)

var ErrEmptyQuery = errors.New("empty search query")

type Config struct {
	URL       string
	Username  string
	Password  string
	Transport http.RoundTripper
}

func NewClient(ctx context.Context, cfg Config) (*elasticsearch.Client, error) {
	slog.Info("connecting to elasticsearch", "url", cfg.URL)

	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.URL},
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: cfg.Transport,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: new client: %w", err)
	}

	res, err := client.Info(client.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch: info: %s: %s", res.Status(), body)
	}
	return client, nil
}

// Indexer mirrors product changes into a search index and answers
// full-text queries against it.
type Indexer struct {
	client *elasticsearch.Client
	index  string
}

func NewIndexer(client *elasticsearch.Client, index string) *Indexer {
	return &Indexer{client: client, index: index}
}

func (i *Indexer) Publish(ctx context.Context, ev events.ProductEvent) error {
	switch ev.Type {
	case events.ProductCreated, events.ProductUpdated:
		if ev.Product == nil {
			return fmt.Errorf("elasticsearch: %s event without product", ev.Type)
		}
		return i.indexProduct(ctx, *ev.Product)
	case events.ProductDeleted:
		return i.deleteProduct(ctx, ev.ProductID)
	default:
		return fmt.Errorf("elasticsearch: unknown event type %q", ev.Type)
	}
}

// Sync indexes every product in products, so documents that existed before the
// indexer started receiving events are searchable.
func (i *Indexer) Sync(ctx context.Context, products []models.Product) error {
	for _, p := range products {
		if err := i.indexProduct(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (i *Indexer) indexProduct(ctx context.Context, p models.Product) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("elasticsearch: marshal product: %w", err)
	}

	res, err := i.client.Index(i.index, bytes.NewReader(body),
		i.client.Index.WithDocumentID(docID(p.ID)),
		i.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: index product %d: %w", p.ID, err)
	}
	defer res.Body.Close()
	return responseError("index product", res)
}

func (i *Indexer) deleteProduct(ctx context.Context, id int64) error {
	res, err := i.client.Delete(i.index, docID(id), i.client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch: delete product %d: %w", id, err)
	}
	defer res.Body.Close()
	// already gone from the index
	if res.StatusCode == http.StatusNotFound {
		return nil
	}
	return responseError("delete product", res)
}

type searchResult struct {
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source models.Product `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (i *Indexer) Search(ctx context.Context, q string, from, size int) (int64, []models.Product, error) {
	if q == "" {
		return 0, nil, ErrEmptyQuery
	}

	query := map[string]any{
		"from": from,
		"size": size,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: encode query: %w", err)
	}

	res, err := i.client.Search(
		i.client.Search.WithContext(ctx),
		i.client.Search.WithIndex(i.index),
		i.client.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: search: %w", err)
	}
	defer res.Body.Close()
	if err := responseError("search", res); err != nil {
		return 0, nil, err
	}

	var sr searchResult
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return 0, nil, fmt.Errorf("elasticsearch: decode search response: %w", err)
	}

	products := make([]models.Product, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		products = append(products, h.Source)
	}
	return sr.Hits.Total.Value, products, nil
}

func responseError(op string, res *esapi.Response) error {
	if !res.IsError() {
		return nil
	}
	body, _ := io.ReadAll(res.Body)
	return fmt.Errorf("elasticsearch: %s: %s: %s", op, res.Status(), body)
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}
