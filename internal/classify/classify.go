// Package classify maps a free-text change request to a change class
// with guardrail rules. Classification is keyword-based on purpose:
// it must stay predictable and work offline, so no model calls and no
// language parsing.
package classify

import "strings"

// Change classes, ordered from least to most invasive.
const (
	PureUIStyle      = "PURE_UI_STYLE"
	UIBehaviourTweak = "UI_BEHAVIOUR_TWEAK"
	NewFeatureFlow   = "NEW_FEATURE_FLOW"
)

// Result describes the class assigned to a request together with the
// rules an assistant should follow while making that kind of change.
type Result struct {
	Classification string   `json:"classification"`
	Confidence     float64  `json:"confidence"`
	Description    string   `json:"description"`
	Rules          []string `json:"rules"`
}

type classInfo struct {
	description string
	rules       []string
}

var classes = map[string]classInfo{
	PureUIStyle: {
		description: "Visual-only changes: colors, spacing, fonts, text",
		rules: []string{
			"Only touch CSS/styling and text",
			"Do NOT create or delete files",
			"Do NOT change logic or state",
		},
	},
	UIBehaviourTweak: {
		description: "Change when/how something happens",
		rules: []string{
			"Edit existing components/functions",
			"Reuse existing patterns",
			"Do NOT add new pages/routes",
			"Limit changes to minimum files",
		},
	},
	NewFeatureFlow: {
		description: "New screen, route, or user flow",
		rules: []string{
			"Can create new files",
			"Confirm design first",
			"Update the memory artifact after",
		},
	},
}

var styleKeywords = []string{
	"color", "colour", "size", "font", "spacing", "padding",
	"margin", "text", "bigger", "smaller",
	"style", "css", "align", "blue", "red",
}

var behaviourKeywords = []string{
	"toast", "message", "validation", "error",
	"condition", "success", "alert",
	"enable", "disable", "show", "hide", "when", "if",
}

var featureKeywords = []string{
	"page", "screen", "feature",
	"system", "integration", "dashboard",
	"authentication", "auth", "login",
}

func score(request string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(request, kw) {
			n++
		}
	}
	return n
}

// Classify assigns a change class to a free-text request.
//
// Style keywords win over everything: a request mentioning styling is
// the safest to treat as style-only. Feature keywords beat behaviour
// keywords, and anything unrecognized falls back to a behaviour tweak
// rather than a new feature.
func Classify(request string) Result {
	lower := strings.ToLower(request)

	styleScore := score(lower, styleKeywords)
	featureScore := score(lower, featureKeywords)
	behaviourScore := score(lower, behaviourKeywords)

	var class string
	switch {
	case styleScore > 0:
		class = PureUIStyle
	case featureScore > 0:
		class = NewFeatureFlow
	case behaviourScore > 0:
		class = UIBehaviourTweak
	default:
		class = UIBehaviourTweak
	}

	confidence := float64(maxInt(styleScore, behaviourScore, featureScore, 1)) / 3
	if confidence > 1 {
		confidence = 1
	}

	info := classes[class]
	return Result{
		Classification: class,
		Confidence:     confidence,
		Description:    info.description,
		Rules:          info.rules,
	}
}

func maxInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
