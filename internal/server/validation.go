package server

import (
	"errors"
	"fmt"
	"strings"
)

const (
	maxNameLength      = 20
	maxAdjectiveLength = 80
	maxAvatarBytes     = 512 * 1024
	minQuestionCount   = 5
	maxQuestionCount   = 30
	minQuestionSeconds = 10
	maxQuestionSeconds = 120
)

func validateName(name string) (string, error) {
	return validateText("name", name, maxNameLength)
}

func validateAdjective(text string) (string, error) {
	return validateText("adjective", text, maxAdjectiveLength)
}

// validateAvatar accepts an optional data-URL image payload.
func validateAvatar(data string) (string, error) {
	if data == "" {
		return "", nil
	}
	if !strings.HasPrefix(data, "data:image/") {
		return "", errors.New("avatar must be an image data URL")
	}
	if len(data) > maxAvatarBytes {
		return "", fmt.Errorf("avatar must be %d bytes or fewer", maxAvatarBytes)
	}
	return data, nil
}

func validateSettings(settings RoomSettings) (RoomSettings, error) {
	if settings.NumberOfQuestions < minQuestionCount || settings.NumberOfQuestions > maxQuestionCount {
		return RoomSettings{}, fmt.Errorf("number of questions must be between %d and %d", minQuestionCount, maxQuestionCount)
	}
	if settings.QuestionTime < minQuestionSeconds || settings.QuestionTime > maxQuestionSeconds {
		return RoomSettings{}, fmt.Errorf("question time must be between %ds and %ds", minQuestionSeconds, maxQuestionSeconds)
	}
	if len(settings.Categories) == 0 {
		return RoomSettings{}, errors.New("at least one category is required")
	}
	categories := make([]string, 0, len(settings.Categories))
	for _, raw := range settings.Categories {
		id := strings.ToLower(strings.TrimSpace(raw))
		if !isKnownCategory(id) {
			return RoomSettings{}, fmt.Errorf("unknown category %q", raw)
		}
		categories = append(categories, id)
	}
	settings.Categories = categories
	return settings, nil
}

func validateText(label, text string, maxLen int) (string, error) {
	trimmed := normalizeText(text)
	if trimmed == "" {
		return "", fmt.Errorf("%s is required", label)
	}
	if len(trimmed) > maxLen {
		return "", fmt.Errorf("%s must be %d characters or fewer", label, maxLen)
	}
	if !isSafeText(trimmed) {
		return "", fmt.Errorf("%s contains unsupported characters", label)
	}
	return trimmed, nil
}

func normalizeText(text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	return strings.Join(fields, " ")
}

func isSafeText(text string) bool {
	for _, r := range text {
		if r > 127 {
			return false
		}
		if r >= 'a' && r <= 'z' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			continue
		}
		if r >= '0' && r <= '9' {
			continue
		}
		switch r {
		case ' ', '-', '_', '\'', '"', '.', ',', '!', '?', ':', ';', '&', '(', ')', '/':
			continue
		default:
			return false
		}
	}
	return true
}
