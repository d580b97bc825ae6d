package blogservice

import "regexp"

var scriptTagPattern = regexp.MustCompile(`(?i)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitizeContent strips script tags from every string value inside the
// content blocks before the document is stored.
func sanitizeContent(c *Content) {
	for _, block := range c.Blocks {
		for key, value := range block.Data {
			if s, ok := value.(string); ok {
				block.Data[key] = scriptTagPattern.ReplaceAllString(s, "")
			}
		}
	}
}
