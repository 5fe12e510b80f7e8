package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildStatisticsMessageCarriesMarkersAndDate(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	text := BuildStatisticsMessage(2, 10, now, "Так держать!")

	assert.Contains(t, text, "📊 Статистика просмотров")
	assert.Contains(t, text, "За эту сессию: 2 просмотра")
	assert.Contains(t, text, "Всего просмотрено: 10 инициатив")
	assert.Contains(t, text, "29.08.2026")
	assert.Contains(t, text, "Так держать!")
}

func TestIsSameDayStatistics(t *testing.T) {
	now := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "today's statistics message",
			text: BuildStatisticsMessage(1, 5, now, "x"),
			want: true,
		},
		{
			name: "yesterday's statistics message",
			text: BuildStatisticsMessage(1, 5, yesterday, "x"),
			want: false,
		},
		{
			name: "ordinary chat message",
			text: "Привет! Как дела?",
			want: false,
		},
		{
			name: "message with date but no markers",
			text: "встречаемся 29.08.2026",
			want: false,
		},
		{
			name: "empty",
			text: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSameDayStatistics(tt.text, now))
		})
	}
}

func TestFormatViews(t *testing.T) {
	assert.Equal(t, "0 просмотров", formatViews(0))
	assert.Equal(t, "1 просмотр", formatViews(1))
	assert.Equal(t, "3 просмотра", formatViews(3))
	assert.Equal(t, "7 просмотров", formatViews(7))
}

func TestFormatInitiatives(t *testing.T) {
	assert.Equal(t, "1 инициатива", formatInitiatives(1))
	assert.Equal(t, "2 инициативы", formatInitiatives(2))
	assert.Equal(t, "12 инициатив", formatInitiatives(12))
}

func TestRandomPhraseFromFixedSet(t *testing.T) {
	phrase := RandomPhrase()
	assert.Contains(t, motivationalPhrases, phrase)
}
