package classify

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		request string
		want    string
	}{
		{"Change button color to blue", PureUIStyle},
		{"Make the text bigger", PureUIStyle},
		{"Show error toast on failure", UIBehaviourTweak},
		{"Disable the submit button until valid", UIBehaviourTweak},
		{"Add a new Settings page", NewFeatureFlow},
		{"Add user authentication", NewFeatureFlow},
		{"Create a new dashboard screen", NewFeatureFlow},
		{"Refactor the repository layer", UIBehaviourTweak}, // unknown defaults to behaviour
	}
	for _, tt := range tests {
		got := Classify(tt.request)
		if got.Classification != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.request, got.Classification, tt.want)
		}
	}
}

func TestClassifyStyleBeatsFeature(t *testing.T) {
	// "page" is a feature keyword, but any style keyword wins.
	got := Classify("Change the font on the settings page")
	if got.Classification != PureUIStyle {
		t.Errorf("got %s, want style to take priority", got.Classification)
	}
}

func TestClassifyResultShape(t *testing.T) {
	got := Classify("add a success message")
	if got.Description == "" {
		t.Error("missing description")
	}
	if len(got.Rules) == 0 {
		t.Error("missing rules")
	}
	if got.Confidence <= 0 || got.Confidence > 1 {
		t.Errorf("confidence out of range: %v", got.Confidence)
	}
}
