package search

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
)

// DirectoryEntry is the indexed, password-free view of a user.
type DirectoryEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	ProfileImage string    `json:"profileImage,omitempty"`
	City         string    `json:"city,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserDirectory keeps an Elasticsearch index of accounts for the admin tables.
type UserDirectory struct {
	ES    *elasticsearch.Client
	Index string
}

func NewUserDirectory(es *elasticsearch.Client, index string) *UserDirectory {
	return &UserDirectory{ES: es, Index: index}
}

func entryFor(u *entity.User) DirectoryEntry {
	e := DirectoryEntry{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role.String(),
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.Address != nil {
		e.City = u.Address.City
	}
	// data URLs are too large to be worth indexing
	if strings.HasPrefix(e.ProfileImage, "data:") {
		e.ProfileImage = ""
	}
	return e
}

// IndexUser upserts the user's directory entry.
func (d *UserDirectory) IndexUser(ctx context.Context, u *entity.User) error {
	b, err := json.Marshal(entryFor(u))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: d.Index, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, d.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// indexMapping keeps role and email exact so filters and sorting behave.
const indexMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "keyword"},
      "name":         {"type": "text"},
      "email":        {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "role":         {"type": "keyword"},
      "profileImage": {"type": "keyword", "index": false},
      "city":         {"type": "keyword"},
      "createdAt":    {"type": "date"},
      "updatedAt":    {"type": "date"}
    }
  }
}`

// EnsureIndex creates the directory index with its mapping if it does not exist yet.
func (d *UserDirectory) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := d.ES.Indices.Exists([]string{d.Index}, d.ES.Indices.Exists.WithContext(c))
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = d.ES.Indices.Create(d.Index,
		d.ES.Indices.Create.WithContext(c),
		d.ES.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	// 400 here is resource_already_exists from a concurrent start
	if res.IsError() && res.StatusCode != 400 {
		return fmt.Errorf("es create index: %s", res.Status())
	}
	return nil
}

// buildQuery matches q against email and name, optionally restricted to one role.
func buildQuery(q, role string, size int) map[string]any {
	var must []any
	if q = strings.TrimSpace(q); q != "" {
		must = append(must, map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		})
	} else {
		must = append(must, map[string]any{"match_all": map[string]any{}})
	}
	boolQuery := map[string]any{"must": must}
	if role != "" {
		boolQuery["filter"] = []any{map[string]any{"term": map[string]any{"role": role}}}
	}
	return map[string]any{
		"query": map[string]any{"bool": boolQuery},
		"size":  size,
		"sort":  []any{"_score", map[string]any{"createdAt": map[string]any{"order": "desc"}}},
	}
}

// Search returns at most size entries.
func (d *UserDirectory) Search(ctx context.Context, q, role string, size int) ([]DirectoryEntry, error) {
	b, err := json.Marshal(buildQuery(q, role, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := d.ES.Search(
		d.ES.Search.WithContext(c),
		d.ES.Search.WithIndex(d.Index),
		d.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source DirectoryEntry `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]DirectoryEntry, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
