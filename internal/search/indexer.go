package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"avidoBack/internal/models"
)

// Document is the denormalized copy of the searchable advertisement fields.
type Document struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EnsureIndex creates the advertisements index if it does not exist yet.
// A 400 from an already-existing index is not an error.
func (c *Client) EnsureIndex(ctx context.Context) error {
	body, err := json.Marshal(indexDefinition())
	if err != nil {
		return err
	}
	res, err := c.esClient.Indices.Create(
		c.index,
		c.esClient.Indices.Create.WithContext(ctx),
		c.esClient.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() && res.StatusCode != 400 {
		raw, _ := io.ReadAll(res.Body)
		return fmt.Errorf("create index returned error [%d]: %s", res.StatusCode, string(raw))
	}
	return nil
}

// IndexAdvertisements upserts every advertisement into the index, keyed by
// id so repeated eager reindexes stay last-write-wins instead of growing
// the index.
func (c *Client) IndexAdvertisements(ctx context.Context, ads []models.Advertisement) error {
	if err := c.EnsureIndex(ctx); err != nil {
		return err
	}
	for _, ad := range ads {
		doc := Document{ID: ad.ID, Name: ad.Name, Description: ad.Description}
		body, err := json.Marshal(doc)
		if err != nil {
			return err
		}
		res, err := c.esClient.Index(
			c.index,
			bytes.NewReader(body),
			c.esClient.Index.WithContext(ctx),
			c.esClient.Index.WithDocumentID(strconv.Itoa(ad.ID)),
		)
		if err != nil {
			return fmt.Errorf("index advertisement %d: %w", ad.ID, err)
		}
		if res.IsError() {
			raw, _ := io.ReadAll(res.Body)
			_ = res.Body.Close()
			return fmt.Errorf("index advertisement %d returned error [%d]: %s", ad.ID, res.StatusCode, string(raw))
		}
		_ = res.Body.Close()
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source Document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search runs the fuzzy/phrase query and returns matched advertisement ids.
func (c *Client) Search(ctx context.Context, nameQuery, descriptionQuery string) ([]int, error) {
	body, err := json.Marshal(BuildSearchQuery(nameQuery, descriptionQuery))
	if err != nil {
		return nil, err
	}
	res, err := c.esClient.Search(
		c.esClient.Search.WithContext(ctx),
		c.esClient.Search.WithIndex(c.index),
		c.esClient.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.IsError() {
		raw, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search returned error [%d]: %s", res.StatusCode, string(raw))
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	ids := make([]int, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}
