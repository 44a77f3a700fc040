package teamname

import "strings"

// Table is the read-only token data a Normalizer works with.
type Table struct {
	stopWords map[string]struct{}
	synonyms  map[string]string
}

// NewTable copies the given tokens so later changes by the caller are not observed.
func NewTable(stopWords []string, synonyms map[string]string) Table {
	table := Table{
		stopWords: make(map[string]struct{}, len(stopWords)),
		synonyms:  make(map[string]string, len(synonyms)),
	}
	for _, word := range stopWords {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		table.stopWords[word] = struct{}{}
	}
	for from, to := range synonyms {
		from = strings.ToLower(strings.TrimSpace(from))
		to = strings.ToLower(strings.TrimSpace(to))
		if from == "" || to == "" {
			continue
		}
		table.synonyms[from] = to
	}
	return table
}

func (t Table) isStopWord(token string) bool {
	_, ok := t.stopWords[token]
	return ok
}

func (t Table) synonym(token string) string {
	if mapped, ok := t.synonyms[token]; ok {
		return mapped
	}
	return token
}

var championsLeagueStopWords = []string{
	"club", "de", "del", "la", "el", "cf", "fc", "cd", "sd", "ud", "rcd", "ac", "sc", "ad",
	"fk", "nk", "sk", "if", "bk", "kv", "pae", "ssc",
	"balompie", "futbol", "deportivo",
}

var championsLeagueSynonyms = map[string]string{
	"milano":         "milan",
	"internazionale": "inter",
	"munchen":        "munich",
	"muenchen":       "munich",
	"olympiakos":     "olympiacos",
	"beograd":        "belgrade",
	"paphos":         "pafos",
}

var laLigaStopWords = []string{
	"club", "de", "del", "la", "el", "cf", "fc", "cd", "sd", "ud", "rcd", "ac", "sc", "ad",
	"balompie", "futbol", "deportivo",
}

// DefaultTable is the international table. It covers club prefixes from across
// Europe plus transliteration variants seen between providers.
func DefaultTable() Table {
	return NewTable(championsLeagueStopWords, championsLeagueSynonyms)
}

// LaLigaTable only strips Spanish club prefixes and maps no synonyms.
func LaLigaTable() Table {
	return NewTable(laLigaStopWords, nil)
}

// TableForCompetition picks the token table used for a competition code.
func TableForCompetition(code string) Table {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "PD":
		return LaLigaTable()
	default:
		return DefaultTable()
	}
}
