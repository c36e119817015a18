package ingest

import "strings"

// gazetteer maps canonical area names to the aliases that may appear in
// headline text. Areas are listed before their parent cities so the most
// specific name wins.
var gazetteer = []struct {
	canonical string
	aliases   []string
}{
	// Ahmedabad areas
	{"Maninagar, Ahmedabad", []string{"maninagar"}},
	{"Navrangpura, Ahmedabad", []string{"navrangpura"}},
	{"Satellite, Ahmedabad", []string{"satellite road", "satellite area"}},
	{"Bopal, Ahmedabad", []string{"bopal"}},

	// Indian cities
	{"Ahmedabad", []string{"ahmedabad"}},
	{"Mumbai", []string{"mumbai", "bombay"}},
	{"Delhi", []string{"delhi", "new delhi"}},
	{"Bengaluru", []string{"bengaluru", "bangalore"}},
	{"Chennai", []string{"chennai"}},
	{"Kolkata", []string{"kolkata"}},
	{"Surat", []string{"surat"}},
	{"Gandhinagar", []string{"gandhinagar"}},

	// World cities
	{"London", []string{"london"}},
	{"New York", []string{"new york", "new york city", "manhattan"}},
	{"Washington", []string{"washington dc", "washington d c"}},
	{"Paris", []string{"paris"}},
	{"Tokyo", []string{"tokyo"}},
	{"Moscow", []string{"moscow"}},
	{"Beijing", []string{"beijing"}},
	{"Sydney", []string{"sydney"}},
	{"Dubai", []string{"dubai"}},
	{"Singapore", []string{"singapore"}},
}

// ExtractLocation finds the most specific gazetteer entry named in the text,
// or "" when no known place is mentioned. Articles without a location are
// never auto-clustered.
func ExtractLocation(text string) string {
	lowered := strings.ToLower(text)
	for _, entry := range gazetteer {
		for _, alias := range entry.aliases {
			if containsPhrase(lowered, alias) {
				return entry.canonical
			}
		}
	}
	return ""
}
