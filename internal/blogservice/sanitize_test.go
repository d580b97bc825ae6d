package blogservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestSanitizeContent(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text",
			input: "hello world",
			want:  "hello world",
		},
		{
			name:  "script tag",
			input: `before<script>alert("xss")</script>after`,
			want:  "beforeafter",
		},
		{
			name:  "script tag with attributes",
			input: `<script type="text/javascript">alert("xss")</script>text`,
			want:  "text",
		},
		{
			name:  "case insensitive",
			input: `<SCRIPT>alert("xss")</SCRIPT>text`,
			want:  "text",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			content := Content{Blocks: []ContentBlock{
				{Type: "paragraph", Data: bson.M{"text": tc.input}},
			}}

			sanitizeContent(&content)

			assert.Equal(t, tc.want, content.Blocks[0].Data["text"])
		})
	}
}

func TestSanitizeContentKeepsNonStrings(t *testing.T) {
	content := Content{Blocks: []ContentBlock{
		{Type: "list", Data: bson.M{"items": []string{"a", "b"}, "ordered": true}},
	}}

	sanitizeContent(&content)

	assert.Equal(t, true, content.Blocks[0].Data["ordered"])
}
