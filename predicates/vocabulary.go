package predicates

import "fmt"

var (
	AlchemyVocabulary = mustNames(
		"r", "y", "g", "o", "p", "b",
		"1", "2", "3", "4", "5", "6", "7",
		"-1",
		"X1/1",
		"PColor",
		"APour", "AMix", "ADrain",
		"all-objects", "index",
		"H0", "H1", "H2",
	)

	SceneVocabulary = mustNames(
		"r", "y", "g", "o", "p", "b", "e",
		"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
		"-1",
		"PShirt", "PHat", "PLeft", "PRight", "DShirtHat",
		"ALeave", "ASwapHats", "AMove", "ACreate",
		"all-objects", "index",
		"H0", "H1", "H2", "H3",
	)

	TangramsVocabulary = mustNames(
		"1", "2", "3", "4", "5",
		"-1",
		"AAdd", "ASwap", "ARemove",
		"all-objects", "index",
		"H0", "H1", "H2",
	)

	UndogramsVocabulary = mustNames(
		"1", "2", "3", "4", "5",
		"-1",
		"AAdd", "ASwap", "ARemove",
		"all-objects", "index",
		"H0", "H1", "H2", "HUndo",
	)
)

func mustNames(names ...string) []Predicate {
	ret := make([]Predicate, 0, len(names))
	for _, name := range names {
		ret = append(ret, MustNew(name))
	}
	return ret
}

// Vocabulary returns the default predicate list of a domain.
func Vocabulary(domain string) ([]Predicate, error) {
	switch domain {
	case "alchemy":
		return AlchemyVocabulary, nil
	case "scene":
		return SceneVocabulary, nil
	case "tangrams":
		return TangramsVocabulary, nil
	case "undograms":
		return UndogramsVocabulary, nil
	}
	return nil, fmt.Errorf("unknown domain: %s", domain)
}
