package matching

import (
	"sort"
	"strings"

	"github.com/Fatal777/ApplyX-sub001/internal/domain/listing"
)

// Profile carries the resume signals the engine scores against. Zero
// ExperienceYears and empty ExperienceLevel mean "no experience signal".
type Profile struct {
	Keywords        []string
	Skills          []string
	ExperienceYears int
	ExperienceLevel string
}

type Scored struct {
	Listing listing.JobListing `json:"listing"`
	Score   float64            `json:"score"`
}

const (
	levelNone = iota
	levelJunior
	levelMid
	levelSenior
)

// Rank scores each listing against the profile and returns the topN best
// matches in descending score order. Listings with zero term overlap are
// excluded before ranking. Equal scores preserve the original listing order,
// so output is deterministic for identical input.
//
// Score = (matched resume terms / total resume terms) × experience
// multiplier, where the multiplier is 1.2 when both sides expose a congruent
// experience level, 0.8 when they are two or more levels apart, and 1.0
// otherwise. The final score is clamped to [0, 1].
func Rank(p Profile, listings []listing.JobListing, topN int) []Scored {
	terms := resumeTerms(p)
	if len(terms) == 0 {
		return nil
	}
	profileLevel := resolveLevel(p.ExperienceLevel, p.ExperienceYears)

	out := make([]Scored, 0, len(listings))
	for _, l := range listings {
		tokens := listingTokens(l)

		matched := 0
		for t := range terms {
			if _, ok := tokens[t]; ok {
				matched++
			}
		}
		if matched == 0 {
			continue
		}

		score := float64(matched) / float64(len(terms))
		score *= experienceMultiplier(profileLevel, listingLevel(l))
		if score > 1 {
			score = 1
		}
		out = append(out, Scored{Listing: l, Score: score})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})

	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}

func resumeTerms(p Profile) map[string]struct{} {
	terms := make(map[string]struct{}, len(p.Keywords)+len(p.Skills))
	add := func(values []string) {
		for _, v := range values {
			v = strings.ToLower(strings.TrimSpace(v))
			if v == "" {
				continue
			}
			terms[v] = struct{}{}
		}
	}
	add(p.Keywords)
	add(p.Skills)
	return terms
}

func listingTokens(l listing.JobListing) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, f := range strings.Fields(strings.ToLower(l.Title + " " + l.Description)) {
		f = strings.Trim(f, ".,;:()[]{}!?\"'")
		if f == "" {
			continue
		}
		tokens[f] = struct{}{}
	}
	for _, s := range l.Skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		tokens[s] = struct{}{}
	}
	return tokens
}

func experienceMultiplier(profileLevel, jobLevel int) float64 {
	if profileLevel == levelNone || jobLevel == levelNone {
		return 1.0
	}
	diff := profileLevel - jobLevel
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff == 0:
		return 1.2
	case diff >= 2:
		return 0.8
	default:
		return 1.0
	}
}

func resolveLevel(level string, years int) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "junior", "entry", "intern", "graduate":
		return levelJunior
	case "mid", "middle", "intermediate":
		return levelMid
	case "senior", "lead", "principal", "staff":
		return levelSenior
	}
	switch {
	case years >= 5:
		return levelSenior
	case years >= 2:
		return levelMid
	case years > 0:
		return levelJunior
	}
	return levelNone
}

var (
	seniorMarkers = []string{"senior", "sr.", "lead", "principal", "staff"}
	juniorMarkers = []string{"junior", "jr.", "entry level", "entry-level", "intern", "graduate"}
)

func listingLevel(l listing.JobListing) int {
	text := strings.ToLower(l.Title + " " + l.Description)
	for _, m := range seniorMarkers {
		if strings.Contains(text, m) {
			return levelSenior
		}
	}
	for _, m := range juniorMarkers {
		if strings.Contains(text, m) {
			return levelJunior
		}
	}
	return levelNone
}
