package validation

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// Максимальные длины для различных полей
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxCustomTextLength  = 2000
	MaxFolderLength      = 64

	MinTitleLength = 1
)

// ValidateTitle проверяет заголовок подарка
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if len(title) < MinTitleLength {
		return fmt.Errorf("title cannot be empty")
	}

	if len(title) > MaxTitleLength {
		return fmt.Errorf("title cannot exceed %d characters", MaxTitleLength)
	}

	return nil
}

// ValidateDescription проверяет описание подарка
func ValidateDescription(description string) error {
	if len(description) > MaxDescriptionLength {
		return fmt.Errorf("description cannot exceed %d characters", MaxDescriptionLength)
	}

	return nil
}

// ValidateCustomText проверяет текст пользовательского пожелания
func ValidateCustomText(text string) error {
	if len(text) > MaxCustomTextLength {
		return fmt.Errorf("custom text cannot exceed %d characters", MaxCustomTextLength)
	}

	return nil
}

// ValidateImageURL проверяет URL изображения
func ValidateImageURL(raw string) error {
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid image url: %s", raw)
	}

	return nil
}

// ValidateFolder проверяет имя папки для загрузки медиа
func ValidateFolder(folder string) error {
	if folder == "" {
		return nil
	}

	if len(folder) > MaxFolderLength {
		return fmt.Errorf("folder cannot exceed %d characters", MaxFolderLength)
	}

	if strings.ContainsAny(folder, "/\\.") {
		return fmt.Errorf("folder must be a single path segment")
	}

	return nil
}
