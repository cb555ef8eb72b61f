// Package advisor generates investment recommendations from model text
// with a deterministic rule-based fallback.
package advisor

import (
	"regexp"
	"strings"

	"github.com/bobmcallan/arvest/internal/models"
)

const (
	maxRecommendations        = 4
	maxProductsPerRec         = 3
	minDescriptionLen         = 30
	minParagraphLen           = 50
	highPriorityCount         = 2
	defaultRecommendationType = models.RecommendationTypeAIGenerated
	defaultAction             = "Consider this investment opportunity"
)

var (
	bulletRe       = regexp.MustCompile(`^\s*[*•\-]\s+`)
	numberedBoldRe = regexp.MustCompile(`^\s*\d+[.)]\s*\*\*`)
	numberedRe     = regexp.MustCompile(`^\s*\d+[.)]\s*`)
	emphasisRe     = regexp.MustCompile(`\*\*([^*]+)\*\*`)

	productKeywordRe = regexp.MustCompile(`(?i)\b(fund|bond|equity|sip|investment)s?\b`)
	investKeywordRe  = regexp.MustCompile(`(?i)\b(invest\w*|funds?|bonds?)\b`)

	// Product-name recognizers, tried in order. Fund-family prefixes first,
	// then index names, then a generic capitalized-phrase form.
	productPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(?:HDFC|SBI|ICICI|Axis|Kotak|Nippon|UTI|Tata|Aditya Birla|Franklin|Mirae)\s+[A-Z][\w&]*(?:\s+[A-Z][\w&]*)*`),
		regexp.MustCompile(`\bNifty\s+\w+`),
		regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\s+(?:Fund|ETF|Bond|Equity|Index)\b`),
	}
)

// ParseRecommendations extracts up to 4 structured recommendations from
// free-form model text. Lines are scanned first; if none are accepted, the
// text is re-segmented into paragraphs. A nil or empty result means the
// caller should fall back to rule-based recommendations.
func ParseRecommendations(text string) []*models.Recommendation {
	recs := parseLines(text)
	if len(recs) == 0 {
		recs = parseParagraphs(text)
	}
	return recs
}

func parseLines(text string) []*models.Recommendation {
	var recs []*models.Recommendation
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isBoilerplate(line) {
			continue
		}
		if !isRecommendationLine(line) {
			continue
		}

		title, description := splitTitle(line)
		if title == "" || len(description) <= minDescriptionLen {
			continue
		}

		recs = append(recs, newRecommendation(title, description, len(recs)))
		if len(recs) == maxRecommendations {
			break
		}
	}
	return recs
}

func parseParagraphs(text string) []*models.Recommendation {
	var recs []*models.Recommendation
	for _, raw := range strings.Split(text, "\n\n") {
		para := strings.TrimSpace(strings.ReplaceAll(raw, "\n", " "))
		if len(para) <= minParagraphLen || isBoilerplate(para) {
			continue
		}
		if !investKeywordRe.MatchString(para) {
			continue
		}

		title, description := splitTitle(para)
		if title == "" {
			title = "Investment Opportunity"
			description = para
		}

		recs = append(recs, newRecommendation(title, description, len(recs)))
		if len(recs) == maxRecommendations {
			break
		}
	}
	return recs
}

func newRecommendation(title, description string, position int) *models.Recommendation {
	priority := models.PriorityMedium
	if position < highPriorityCount {
		priority = models.PriorityHigh
	}
	return &models.Recommendation{
		Type:        defaultRecommendationType,
		Title:       title,
		Description: description,
		Action:      defaultAction,
		Priority:    priority,
		Products:    extractProducts(description),
	}
}

// isBoilerplate filters headers, lead-in phrases and fragments that carry
// no advisory content.
func isBoilerplate(line string) bool {
	if len(line) < 20 {
		return true
	}
	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "here are") || strings.HasPrefix(lower, "here's") {
		return true
	}
	if strings.HasPrefix(line, "#") {
		return true
	}
	// Section headers like "**Risk Management Tips:**" with nothing after.
	stripped := strings.TrimSpace(emphasisRe.ReplaceAllString(line, "$1"))
	if strings.HasSuffix(stripped, ":") && len(stripped) < 60 {
		return true
	}
	return false
}

func isRecommendationLine(line string) bool {
	if bulletRe.MatchString(line) || numberedBoldRe.MatchString(line) {
		return true
	}
	return emphasisRe.MatchString(line) && productKeywordRe.MatchString(line)
}

// splitTitle extracts a title from the first emphasized span, or from the
// text before the first colon when no emphasis is present. The remainder
// becomes the description.
func splitTitle(line string) (title, description string) {
	stripped := bulletRe.ReplaceAllString(line, "")
	stripped = numberedRe.ReplaceAllString(stripped, "")

	if m := emphasisRe.FindStringSubmatchIndex(stripped); m != nil {
		title = strings.TrimSpace(stripped[m[2]:m[3]])
		rest := stripped[:m[0]] + stripped[m[1]:]
		description = cleanText(rest)
		return title, description
	}

	if idx := strings.Index(stripped, ":"); idx > 0 {
		title = strings.TrimSpace(stripped[:idx])
		description = cleanText(stripped[idx+1:])
		return title, description
	}

	return "", ""
}

func cleanText(s string) string {
	s = emphasisRe.ReplaceAllString(s, "$1")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, ":")
	s = strings.TrimPrefix(s, "-")
	return strings.TrimSpace(s)
}

// extractProducts collects up to 3 unique product names mentioned in the
// description, in discovery order.
func extractProducts(description string) []string {
	var products []string
	for _, pattern := range productPatterns {
		for _, match := range pattern.FindAllString(description, -1) {
			match = strings.TrimSpace(match)
			if containsProduct(products, match) {
				continue
			}
			products = append(products, match)
			if len(products) == maxProductsPerRec {
				return products
			}
		}
	}
	return products
}

// containsProduct reports whether name duplicates an already collected
// product. Later patterns can re-match fragments of earlier matches
// ("Flexi Cap Fund" inside "HDFC Flexi Cap Fund"), so substring hits count
// as duplicates too.
func containsProduct(products []string, name string) bool {
	for _, p := range products {
		if p == name || strings.Contains(p, name) {
			return true
		}
	}
	return false
}
