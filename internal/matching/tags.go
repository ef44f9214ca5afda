package matching

import "strings"

// tagAliases maps canonical terms to synonymous phrases seen in opportunity
// themes. Checked in both directions: a profile interest may be the canonical
// key or one of its aliases.
var tagAliases = map[string][]string{
	"ai":         {"artificial intelligence", "machine learning", "ml", "deep learning", "llm", "generative ai"},
	"web3":       {"blockchain", "crypto", "cryptocurrency", "defi", "nft", "smart contracts"},
	"fintech":    {"finance", "financial technology", "payments", "banking", "insurtech"},
	"healthtech": {"health", "healthcare", "medtech", "biotech", "digital health"},
	"climate":    {"climate tech", "sustainability", "cleantech", "green energy", "renewable energy"},
	"edtech":     {"education", "learning", "e-learning"},
	"gaming":     {"games", "game development", "esports"},
	"devtools":   {"developer tools", "dev tools", "infrastructure", "open source"},
	"security":   {"cybersecurity", "cyber security", "infosec", "privacy"},
	"data":       {"big data", "data science", "analytics"},
}

// MatchTags compares profile interests against opportunity themes and returns
// an overlap score plus the matched interests. Display-only: the score is
// exposed for explanatory UI text and never feeds the total match score.
//
// Passes, cheapest first: exact intersection, alias-table expansion, raw
// substring containment in both directions.
func MatchTags(profileTags, oppTags []string) (float64, []string) {
	profile := normalizeTags(profileTags)
	themes := normalizeTags(oppTags)
	if len(profile) == 0 || len(themes) == 0 {
		return NeutralScore, nil
	}

	themeSet := make(map[string]struct{}, len(themes))
	for _, t := range themes {
		themeSet[t] = struct{}{}
	}

	var matches []string
	for _, p := range profile {
		if _, ok := themeSet[p]; ok {
			matches = append(matches, p)
			continue
		}
		if matchesAlias(p, themes) || matchesSubstring(p, themes) {
			matches = append(matches, p)
		}
	}

	score := float64(len(matches)) / float64(len(profile))
	if score > 1 {
		score = 1
	}
	return score, matches
}

// Intersect returns the exact overlap of two tag lists after normalization,
// preserving the order of the first list.
func Intersect(a, b []string) []string {
	bSet := make(map[string]struct{}, len(b))
	for _, t := range normalizeTags(b) {
		bSet[t] = struct{}{}
	}
	var out []string
	for _, t := range normalizeTags(a) {
		if _, ok := bSet[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// expandAliases returns the canonical key plus all aliases for a term,
// whether the term is a key itself or appears in some key's alias list.
func expandAliases(term string) []string {
	if aliases, ok := tagAliases[term]; ok {
		return append([]string{term}, aliases...)
	}
	for key, aliases := range tagAliases {
		for _, a := range aliases {
			if a == term {
				return append([]string{key}, aliases...)
			}
		}
	}
	return nil
}

func matchesAlias(profileTag string, themes []string) bool {
	expansion := expandAliases(profileTag)
	for _, candidate := range expansion {
		for _, theme := range themes {
			if candidate == theme || strings.Contains(theme, candidate) || strings.Contains(candidate, theme) {
				return true
			}
		}
	}
	return false
}

func matchesSubstring(profileTag string, themes []string) bool {
	for _, theme := range themes {
		if strings.Contains(theme, profileTag) || strings.Contains(profileTag, theme) {
			return true
		}
	}
	return false
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, t := range tags {
		n := strings.ToLower(strings.TrimSpace(t))
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
