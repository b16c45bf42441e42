package analyzer

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Indicator phrase lists used by the rule-based analyzer. Order matters:
// span resolution and the indicator panel both report phrases in list order.

var DefaultScopeCreepPhrases = []string{
	"also",
	"additionally",
	"one more thing",
	"quick addition",
	"while you're at it",
	"shouldn't take long",
	"real quick",
	"easy change",
	"small tweak",
	"just add",
	"can you also",
	"by the way",
	"oh and",
	"almost forgot",
	"one more request",
	"tiny favor",
	"simple addition",
	"minor update",
}

// Phrases indicating a revision to existing scope, not necessarily creep.
var DefaultRevisionPhrases = []string{
	"change",
	"update",
	"modify",
	"revise",
	"adjust",
	"tweak",
	"different",
	"instead",
	"actually",
	"on second thought",
}

// Phrases indicating the client is asking a question, not requesting work.
var DefaultClarificationPhrases = []string{
	"what do you mean",
	"can you explain",
	"not sure about",
	"question about",
	"clarify",
	"confused",
	"understand",
}

// PhraseSet bundles the three indicator lists.
type PhraseSet struct {
	ScopeCreep    []string `yaml:"scope_creep"`
	Revision      []string `yaml:"revision"`
	Clarification []string `yaml:"clarification"`
}

func DefaultPhrases() PhraseSet {
	return PhraseSet{
		ScopeCreep:    DefaultScopeCreepPhrases,
		Revision:      DefaultRevisionPhrases,
		Clarification: DefaultClarificationPhrases,
	}
}

// LoadPhrases reads a phrase set from a YAML file. Lists missing from the
// file fall back to the defaults.
func LoadPhrases(path string) (PhraseSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PhraseSet{}, err
	}

	var set PhraseSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return PhraseSet{}, err
	}

	defaults := DefaultPhrases()
	if len(set.ScopeCreep) == 0 {
		set.ScopeCreep = defaults.ScopeCreep
	}
	if len(set.Revision) == 0 {
		set.Revision = defaults.Revision
	}
	if len(set.Clarification) == 0 {
		set.Clarification = defaults.Clarification
	}
	return set, nil
}
