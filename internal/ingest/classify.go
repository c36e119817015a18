package ingest

import (
	"regexp"
	"strings"
	"sync"
)

// typeOverrides are high-confidence anchor phrases checked before the
// general keyword dictionary.
var typeOverrides = []struct {
	incidentType string
	phrases      []string
}{
	{"Environment", []string{"earthquake", "hurricane", "cyclone", "flood warning"}},
	{"Sports", []string{"world cup", "olympics", "championship final"}},
	{"Business", []string{"ipo", "earnings report", "quarterly results"}},
	{"Technology", []string{"ransomware attack", "major data breach"}},
	{"Infrastructure", []string{"plane crash", "train derailment", "bridge collapse"}},
	{"Law", []string{"supreme court ruling"}},
	{"Politics", []string{"presidential election results"}},
}

// typeKeywords is the general keyword dictionary, checked in a fixed order
// so classification stays deterministic.
var typeKeywords = []struct {
	incidentType string
	keywords     []string
}{
	{"Crime", []string{
		"murder", "homicide", "robbery", "fraud", "shooting", "stabbing",
		"arrest", "suspect", "charged", "kidnapping", "extortion",
		"smuggling", "drug trafficking", "gang violence",
	}},
	{"Accident", []string{
		"accident", "collision", "crash", "derailed", "capsized",
		"fire broke out", "explosion", "collapsed",
	}},
	{"Environment", []string{
		"flood", "drought", "wildfire", "landslide", "heatwave",
		"pollution", "storm", "monsoon",
	}},
	{"Politics", []string{
		"election", "parliament", "minister", "campaign", "coalition",
		"protest", "policy", "legislation",
	}},
	{"Business", []string{
		"market", "shares", "investment", "startup", "merger",
		"acquisition", "inflation", "layoffs",
	}},
	{"Technology", []string{
		"software", "cyberattack", "artificial intelligence", "satellite",
		"chip", "data breach", "outage",
	}},
	{"Health", []string{
		"outbreak", "epidemic", "hospital", "vaccine", "virus",
		"disease", "health department",
	}},
	{"Sports", []string{
		"tournament", "match", "league", "stadium", "cricket",
		"football", "medal",
	}},
}

// ClassifyIncidentType assigns a categorical incident type from title and
// summary text. Returns the type and the keywords that matched, or empty
// values when nothing matched. Unclassified articles stay singleton
// incidents.
func ClassifyIncidentType(title, summary string) (string, []string) {
	text := strings.ToLower(title + " " + summary)

	for _, override := range typeOverrides {
		for _, phrase := range override.phrases {
			if containsPhrase(text, phrase) {
				return override.incidentType, []string{phrase}
			}
		}
	}

	bestType := ""
	bestMatches := []string{}
	for _, entry := range typeKeywords {
		var matches []string
		for _, keyword := range entry.keywords {
			if containsPhrase(text, keyword) {
				matches = append(matches, keyword)
			}
		}
		if len(matches) > len(bestMatches) {
			bestType = entry.incidentType
			bestMatches = matches
		}
	}

	return bestType, bestMatches
}

// containsPhrase matches a phrase on word boundaries so "rt" cannot fire
// inside "report".
func containsPhrase(text, phrase string) bool {
	return phraseRegex(phrase).MatchString(text)
}

var (
	phraseRegexMu    sync.Mutex
	phraseRegexCache = map[string]*regexp.Regexp{}
)

func phraseRegex(phrase string) *regexp.Regexp {
	phraseRegexMu.Lock()
	defer phraseRegexMu.Unlock()
	if re, ok := phraseRegexCache[phrase]; ok {
		return re
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
	phraseRegexCache[phrase] = re
	return re
}
