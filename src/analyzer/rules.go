package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/scopetrack/scopetrack-go/src/models"
)

// AnalysisResult is the verdict of the rule-based classifier.
type AnalysisResult struct {
	Classification   models.ScopeClassification `json:"classification"`
	Confidence       float64                    `json:"confidence"`
	Reasoning        string                     `json:"reasoning"`
	MatchedScopeItem *uuid.UUID                 `json:"matched_scope_item_id,omitempty"`
	SuggestedAction  string                     `json:"suggested_action"`
	CreepIndicators  []string                   `json:"scope_creep_indicators"`
}

// Analyzer is the deterministic rule engine. It is a fixed phrase matcher
// plus fuzzy scope matching, not an AI classifier.
type Analyzer struct {
	Phrases PhraseSet
}

func New(phrases PhraseSet) *Analyzer {
	return &Analyzer{Phrases: phrases}
}

var suggestedActions = map[models.ScopeClassification]string{
	models.ClassificationInScope:             "Proceed with the work as it falls within the agreed scope.",
	models.ClassificationOutOfScope:          "Send a proposal or quote for this additional work before proceeding.",
	models.ClassificationClarificationNeeded: "Respond to the client's question to clarify the requirements.",
	models.ClassificationRevision:            "Discuss the revision with the client - minor changes may be included, major changes may require a change order.",
}

var wordPattern = regexp.MustCompile(`[a-z]+`)

func tokenize(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(normalize(text), -1) {
		words[w] = struct{}{}
	}
	return words
}

// wordOverlap is the Jaccard similarity between the word sets of two texts.
func wordOverlap(a, b string) float64 {
	wa := tokenize(a)
	wb := tokenize(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	intersection := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			intersection++
		}
	}
	union := len(wa) + len(wb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func bestScopeMatch(content string, items []models.ScopeItem) (idx int, score float64, id *uuid.UUID) {
	idx = -1
	for i, item := range items {
		text := item.Title
		if item.Description != "" {
			text += " " + item.Description
		}
		if s := wordOverlap(content, text); s > score {
			score = s
			idx = i
			matched := item.ID
			id = &matched
		}
	}
	return idx, score, id
}

// Classify runs the decision ladder:
//  1. clarification phrases -> clarification_needed
//  2. revision phrases with a scope match -> revision
//  3. scope-creep indicators -> out_of_scope unless strongly matched
//  4. fuzzy scope match -> in_scope
//  5. default out_of_scope with low confidence
func (a *Analyzer) Classify(content string, items []models.ScopeItem) AnalysisResult {
	clarification := findPhrases(content, a.Phrases.Clarification)
	revision := findPhrases(content, a.Phrases.Revision)
	creep := findPhrases(content, a.Phrases.ScopeCreep)

	matchedIdx, matchScore, matchedID := bestScopeMatch(content, items)

	if len(items) == 0 {
		return AnalysisResult{
			Classification:  models.ClassificationOutOfScope,
			Confidence:      0.9,
			Reasoning:       "No scope items defined - cannot determine if request is in scope.",
			SuggestedAction: suggestedActions[models.ClassificationOutOfScope],
			CreepIndicators: creep,
		}
	}

	if len(clarification) > 0 {
		res := AnalysisResult{
			Classification:  models.ClassificationClarificationNeeded,
			Confidence:      0.85,
			Reasoning:       fmt.Sprintf("Client appears to be asking for clarification. Detected phrases: %s", strings.Join(clarification, ", ")),
			SuggestedAction: suggestedActions[models.ClassificationClarificationNeeded],
			CreepIndicators: creep,
		}
		if matchScore > 0.1 {
			res.MatchedScopeItem = matchedID
		}
		return res
	}

	if len(revision) > 0 && matchScore > 0.15 {
		return AnalysisResult{
			Classification:   models.ClassificationRevision,
			Confidence:       min(0.8, 0.5+matchScore),
			Reasoning:        fmt.Sprintf("Client requesting changes to existing scope item. Detected revision phrases: %s. Matched scope item: '%s'", strings.Join(revision, ", "), items[matchedIdx].Title),
			MatchedScopeItem: matchedID,
			SuggestedAction:  suggestedActions[models.ClassificationRevision],
			CreepIndicators:  creep,
		}
	}

	if len(creep) > 0 {
		if matchScore > 0.4 {
			return AnalysisResult{
				Classification:   models.ClassificationInScope,
				Confidence:       max(0.5, 0.7-float64(len(creep))*0.1),
				Reasoning:        fmt.Sprintf("Request matches scope item '%s' but contains scope creep language: %s. Review carefully.", items[matchedIdx].Title, strings.Join(creep, ", ")),
				MatchedScopeItem: matchedID,
				SuggestedAction:  suggestedActions[models.ClassificationInScope],
				CreepIndicators:  creep,
			}
		}
		return AnalysisResult{
			Classification:  models.ClassificationOutOfScope,
			Confidence:      min(0.95, 0.7+float64(len(creep))*0.05),
			Reasoning:       fmt.Sprintf("Request contains scope creep indicators: %s. No strong match to existing scope items.", strings.Join(creep, ", ")),
			SuggestedAction: suggestedActions[models.ClassificationOutOfScope],
			CreepIndicators: creep,
		}
	}

	if matchScore > 0.3 {
		return AnalysisResult{
			Classification:   models.ClassificationInScope,
			Confidence:       min(0.95, 0.5+matchScore),
			Reasoning:        fmt.Sprintf("Request matches scope item: '%s' with %.0f%% similarity.", items[matchedIdx].Title, matchScore*100),
			MatchedScopeItem: matchedID,
			SuggestedAction:  suggestedActions[models.ClassificationInScope],
			CreepIndicators:  creep,
		}
	}
	if matchScore > 0.15 {
		return AnalysisResult{
			Classification:   models.ClassificationInScope,
			Confidence:       0.5 + matchScore,
			Reasoning:        fmt.Sprintf("Partial match to scope item: '%s'. Consider clarifying with client.", items[matchedIdx].Title),
			MatchedScopeItem: matchedID,
			SuggestedAction:  suggestedActions[models.ClassificationInScope],
			CreepIndicators:  creep,
		}
	}

	return AnalysisResult{
		Classification:  models.ClassificationOutOfScope,
		Confidence:      0.6,
		Reasoning:       "No significant match to any scope items. Request may be outside project scope.",
		SuggestedAction: suggestedActions[models.ClassificationOutOfScope],
		CreepIndicators: creep,
	}
}
