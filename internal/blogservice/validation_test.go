package blogservice

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/hustleworks/hustleblog/internal/common"
)

func publishedContent() Content {
	return Content{Blocks: []ContentBlock{{Type: "paragraph", Data: bson.M{"text": "hello"}}}}
}

func TestValidatePublished(t *testing.T) {
	testCases := []struct {
		name    string
		des     string
		banner  string
		content Content
		tags    []string
		valid   bool
	}{
		{
			name:    "valid",
			des:     "a short description",
			banner:  "https://example.com/banner.jpeg",
			content: publishedContent(),
			tags:    []string{"go"},
			valid:   true,
		},
		{
			name:    "missing description",
			banner:  "https://example.com/banner.jpeg",
			content: publishedContent(),
			tags:    []string{"go"},
			valid:   false,
		},
		{
			name:    "description too long",
			des:     strings.Repeat("a", 201),
			banner:  "https://example.com/banner.jpeg",
			content: publishedContent(),
			tags:    []string{"go"},
			valid:   false,
		},
		{
			name:    "missing banner",
			des:     "a short description",
			content: publishedContent(),
			tags:    []string{"go"},
			valid:   false,
		},
		{
			name:   "empty content blocks",
			des:    "a short description",
			banner: "https://example.com/banner.jpeg",
			tags:   []string{"go"},
			valid:  false,
		},
		{
			name:    "no tags",
			des:     "a short description",
			banner:  "https://example.com/banner.jpeg",
			content: publishedContent(),
			valid:   false,
		},
		{
			name:    "too many tags",
			des:     "a short description",
			banner:  "https://example.com/banner.jpeg",
			content: publishedContent(),
			tags:    []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
			valid:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			v := common.NewValidator()
			validatePublished(v, tc.des, tc.banner, tc.content, tc.tags)
			if v.Valid() != tc.valid {
				t.Errorf("expected %v, got %v: %+v", tc.valid, v.Valid(), v.Errors)
			}
		})
	}
}

func TestMakeSlug(t *testing.T) {
	slug, err := makeSlug("Hello, World! 2024")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(slug, "Hello-World-2024-") {
		t.Errorf("unexpected slug prefix: %s", slug)
	}

	other, err := makeSlug("Hello, World! 2024")
	if err != nil {
		t.Fatal(err)
	}

	if slug == other {
		t.Error("expected slugs for identical titles to differ")
	}
}
