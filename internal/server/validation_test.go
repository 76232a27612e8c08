package server

import (
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	if _, err := validateName("  "); err == nil {
		t.Fatal("blank name accepted")
	}
	if _, err := validateName(strings.Repeat("a", maxNameLength+1)); err == nil {
		t.Fatal("over-long name accepted")
	}
	if _, err := validateName("Alice<script>"); err == nil {
		t.Fatal("markup characters accepted")
	}
	got, err := validateName("  Alice   B.  ")
	if err != nil {
		t.Fatalf("valid name rejected: %v", err)
	}
	if got != "Alice B." {
		t.Fatalf("expected whitespace collapsed, got %q", got)
	}
}

func TestValidateAvatar(t *testing.T) {
	if got, err := validateAvatar(""); err != nil || got != "" {
		t.Fatalf("empty avatar should pass through, got %q err=%v", got, err)
	}
	if _, err := validateAvatar("http://example.com/a.png"); err == nil {
		t.Fatal("non data-URL accepted")
	}
	if _, err := validateAvatar("data:image/png;base64," + strings.Repeat("A", maxAvatarBytes)); err == nil {
		t.Fatal("oversized avatar accepted")
	}
	if _, err := validateAvatar("data:image/png;base64,iVBORw0KGgo="); err != nil {
		t.Fatalf("valid avatar rejected: %v", err)
	}
}

func TestValidateSettings(t *testing.T) {
	base := RoomSettings{NumberOfQuestions: 10, Categories: []string{"classic"}, QuestionTime: 30}

	if _, err := validateSettings(base); err != nil {
		t.Fatalf("valid settings rejected: %v", err)
	}

	bad := base
	bad.NumberOfQuestions = minQuestionCount - 1
	if _, err := validateSettings(bad); err == nil {
		t.Fatal("too few questions accepted")
	}
	bad = base
	bad.NumberOfQuestions = maxQuestionCount + 1
	if _, err := validateSettings(bad); err == nil {
		t.Fatal("too many questions accepted")
	}
	bad = base
	bad.QuestionTime = minQuestionSeconds - 1
	if _, err := validateSettings(bad); err == nil {
		t.Fatal("too short a timer accepted")
	}
	bad = base
	bad.QuestionTime = maxQuestionSeconds + 1
	if _, err := validateSettings(bad); err == nil {
		t.Fatal("too long a timer accepted")
	}
	bad = base
	bad.Categories = nil
	if _, err := validateSettings(bad); err == nil {
		t.Fatal("empty category list accepted")
	}
	bad = base
	bad.Categories = []string{"no-such-category"}
	if _, err := validateSettings(bad); err == nil {
		t.Fatal("unknown category accepted")
	}

	mixed := base
	mixed.Categories = []string{" Classic ", "CUSTOM"}
	got, err := validateSettings(mixed)
	if err != nil {
		t.Fatalf("mixed-case categories rejected: %v", err)
	}
	if got.Categories[0] != "classic" || got.Categories[1] != categoryCustom {
		t.Fatalf("expected normalized categories, got %#v", got.Categories)
	}
}

func TestNewRoomCodeAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := newRoomCode()
		if len(code) != 6 {
			t.Fatalf("expected 6 characters, got %q", code)
		}
		for _, r := range code {
			if strings.ContainsRune("0O1I", r) {
				t.Fatalf("ambiguous character %q in code %q", r, code)
			}
			if !strings.ContainsRune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789", r) {
				t.Fatalf("unexpected character %q in code %q", r, code)
			}
		}
	}
}
