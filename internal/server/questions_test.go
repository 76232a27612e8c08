package server

import (
	"fmt"
	"testing"
)

func TestSampleQuestionsExcludesUsed(t *testing.T) {
	used := map[string]struct{}{
		"kind":  {},
		"funny": {},
	}
	sources, resetNeeded := sampleQuestions([]string{"soft"}, 10, used)
	if resetNeeded {
		t.Fatal("18 remaining adjectives cover a draw of 10")
	}
	if len(sources) != 10 {
		t.Fatalf("expected 10 sources, got %d", len(sources))
	}
	seen := make(map[string]struct{})
	for _, source := range sources {
		if _, asked := used[source.Adjective]; asked {
			t.Fatalf("sampled already-asked adjective %q", source.Adjective)
		}
		if _, dup := seen[source.Adjective]; dup {
			t.Fatalf("sampled %q twice", source.Adjective)
		}
		seen[source.Adjective] = struct{}{}
		if source.Category != "soft" {
			t.Fatalf("unexpected category %q", source.Category)
		}
	}
}

func TestSampleQuestionsSignalsResetWhenHistoryLimits(t *testing.T) {
	used := make(map[string]struct{})
	for _, adjective := range questionCatalog["soft"][:15] {
		used[adjective] = struct{}{}
	}
	sources, resetNeeded := sampleQuestions([]string{"soft"}, 10, used)
	if !resetNeeded {
		t.Fatal("5 remaining of 20 cannot cover a draw of 10")
	}
	if sources != nil {
		t.Fatalf("reset signal should carry no sources, got %d", len(sources))
	}
}

// A catalog genuinely smaller than the requested count is not a reset case;
// the draw just comes up short.
func TestSampleQuestionsShortCatalog(t *testing.T) {
	sources, resetNeeded := sampleQuestions([]string{"soft"}, 50, nil)
	if resetNeeded {
		t.Fatal("an untouched catalog never signals reset")
	}
	if len(sources) != len(questionCatalog["soft"]) {
		t.Fatalf("expected the whole category, got %d", len(sources))
	}
}

func TestSampleQuestionsIgnoresUnknownCategories(t *testing.T) {
	sources, resetNeeded := sampleQuestions([]string{categoryCustom, "no-such-category"}, 10, nil)
	if resetNeeded {
		t.Fatal("an empty pool is not a reset case")
	}
	if len(sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(sources))
	}
}

func TestSampleQuestionsMergesCategories(t *testing.T) {
	sources, resetNeeded := sampleQuestions([]string{"soft", "spicy"}, 30, nil)
	if resetNeeded {
		t.Fatal("unexpected reset signal")
	}
	if len(sources) != 30 {
		t.Fatalf("expected 30 sources, got %d", len(sources))
	}
	categories := make(map[string]int)
	for _, source := range sources {
		categories[source.Category]++
	}
	// 30 of 35 drawn; both categories must contribute.
	if categories["soft"] == 0 || categories["spicy"] == 0 {
		t.Fatalf("expected both categories represented, got %#v", categories)
	}
}

func TestMakeQuestion(t *testing.T) {
	question := makeQuestion(questionSource{Adjective: "talkative", Category: "classic"})
	want := fmt.Sprintf("Who in the room is the most %s?", "talkative")
	if question.Text != want {
		t.Fatalf("expected %q, got %q", want, question.Text)
	}
	if question.Adjective != "talkative" || question.Category != "classic" {
		t.Fatalf("source fields not carried over: %#v", question)
	}
	if question.ID == "" {
		t.Fatal("expected a generated id")
	}
	other := makeQuestion(questionSource{Adjective: "talkative", Category: "classic"})
	if other.ID == question.ID {
		t.Fatal("ids must be unique per instance")
	}
}

func TestIsKnownCategory(t *testing.T) {
	for _, id := range catalogCategoryIDs() {
		if !isKnownCategory(id) {
			t.Fatalf("catalog category %q not recognized", id)
		}
	}
	if !isKnownCategory(categoryCustom) {
		t.Fatal("custom marker must be a valid selection")
	}
	if isKnownCategory("no-such-category") {
		t.Fatal("unknown id accepted")
	}
}
