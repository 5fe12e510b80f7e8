package handlers

import (
	"fmt"
	"strings"
)

func formatViewCount(count int64) string {
	if count == 0 {
		return "0"
	}
	if count == 1 {
		return "1 просмотр"
	}
	if count >= 2 && count <= 4 {
		return fmt.Sprintf("%d просмотра", count)
	}
	return fmt.Sprintf("%d просмотров", count)
}

func categoryEmoji(category string) string {
	categoryLower := strings.ToLower(category)
	if strings.Contains(categoryLower, "благотворительность") {
		return "🫶"
	}
	if strings.Contains(categoryLower, "эко") {
		return "🌱"
	}
	if strings.Contains(categoryLower, "волонтерство") {
		return "🤝"
	}
	return "📋"
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
