package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/config"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/logger"
	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

const projectMapping = `{"settings":{"number_of_shards":1},"mappings":{"dynamic":"strict","properties":{
	"id":{"type":"long"},"title":{"type":"text"},"description":{"type":"text"}
}}}`

// Elastic stores project documents in a single Elasticsearch index.
type Elastic struct {
	client *es.Client
	index  string
}

func NewElastic(cfg config.ElasticsearchConfig) (*Elastic, error) {
	client, err := es.NewClient(es.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &Elastic{client: client, index: cfg.Index}, nil
}

func (e *Elastic) Enabled() bool { return true }

// EnsureIndex creates the project index if it does not exist yet.
func (e *Elastic) EnsureIndex(ctx context.Context) error {
	exists, err := e.client.Indices.Exists([]string{e.index}, e.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index %s: %w", e.index, err)
	}
	exists.Body.Close()
	if exists.StatusCode == 200 {
		return nil
	}

	res, err := e.client.Indices.Create(e.index,
		e.client.Indices.Create.WithBody(bytes.NewBufferString(projectMapping)),
		e.client.Indices.Create.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("create index %s: %w", e.index, err)
	}
	return checkResponse(res)
}

func (e *Elastic) Search(ctx context.Context, query string, limit int) ([]uint, error) {
	body, err := json.Marshal(searchBody(query))
	if err != nil {
		return nil, err
	}

	res, err := e.client.Search(
		e.client.Search.WithContext(ctx),
		e.client.Search.WithIndex(e.index),
		e.client.Search.WithBody(bytes.NewReader(body)),
		e.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", e.index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]uint, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := strconv.ParseUint(h.ID, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func searchBody(query string) map[string]interface{} {
	return map[string]interface{}{
		"_source": false,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"title^2", "description"},
				"fuzziness": "AUTO",
			},
		},
	}
}

func (e *Elastic) Upsert(ctx context.Context, doc Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := e.client.Index(e.index, bytes.NewReader(body),
		e.client.Index.WithDocumentID(docID(doc.ID)),
		e.client.Index.WithContext(ctx))
	if err != nil {
		return err
	}
	return checkResponse(res)
}

func (e *Elastic) Delete(ctx context.Context, id uint) error {
	res, err := e.client.Delete(e.index, docID(id), e.client.Delete.WithContext(ctx))
	if err != nil {
		return err
	}
	if res.StatusCode == 404 {
		res.Body.Close()
		return nil
	}
	return checkResponse(res)
}

// Reindex bulk-loads docs, used at startup to sync the index with the database.
func (e *Elastic) Reindex(ctx context.Context, docs []Document) error {
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:     e.client,
		Index:      e.index,
		NumWorkers: 2,
		FlushBytes: 1 << 20,
	})
	if err != nil {
		return err
	}

	for _, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		err = bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: docID(doc.ID),
			Body:       bytes.NewReader(body),
			OnFailure: func(_ context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				if err != nil {
					logger.Warnf("[Search] Bulk index failed for %s: %v", item.DocumentID, err)
					return
				}
				logger.Warnf("[Search] Bulk index failed for %s: %s", item.DocumentID, res.Error.Reason)
			},
		})
		if err != nil {
			return err
		}
	}

	if err := bi.Close(ctx); err != nil {
		return err
	}
	if stats := bi.Stats(); stats.NumFailed > 0 {
		return fmt.Errorf("reindex: %d of %d documents failed", stats.NumFailed, len(docs))
	}
	return nil
}

func docID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func checkResponse(res *esapi.Response) error {
	defer res.Body.Close()
	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return fmt.Errorf("elasticsearch: %s: %s", res.Status(), bytes.TrimSpace(msg))
	}
	return nil
}
