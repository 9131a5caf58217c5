package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
)

// Requirement: directory entries never carry the password hash or inline image data.
func TestEntryFor(t *testing.T) {
	u := &entity.User{ID: "u1", Name: "A", Email: "a@example.com", PasswordHash: "$2a$10$secret",
		Role: entity.RoleSeller, ProfileImage: "data:image/png;base64,AAAA", Address: &entity.Address{City: "Pune"}}
	e := entryFor(u)
	assert.Equal(t, "seller", e.Role)
	assert.Equal(t, "Pune", e.City)
	assert.Empty(t, e.ProfileImage)
}

// Requirement: queries match name and email, filter by role only when one is given.
func TestBuildQuery(t *testing.T) {
	q := buildQuery("asha", "seller", 5)
	assert.Equal(t, 5, q["size"])
	b := q["query"].(map[string]any)["bool"].(map[string]any)
	must := b["must"].([]any)
	assert.Contains(t, must[0].(map[string]any), "multi_match")
	assert.Len(t, b["filter"], 1)

	q = buildQuery("  ", "", 10)
	b = q["query"].(map[string]any)["bool"].(map[string]any)
	assert.Contains(t, b["must"].([]any)[0].(map[string]any), "match_all")
	assert.NotContains(t, b, "filter")
}
