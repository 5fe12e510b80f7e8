package notifier

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Marker fragments of a statistics message. Classification of a previously
// sent message checks for all three plus today's date, so an ordinary chat
// message is never edited by mistake.
const (
	statsMarker   = "📊 Статистика просмотров"
	sessionMarker = "За эту сессию"
	totalMarker   = "Всего просмотрено"

	dateLayout = "02.01.2006"
)

var motivationalPhrases = []string{
	"👍 Так держать! Каждая инициатива — шаг к добрым делам.",
	"🌟 Отличная активность! Продолжайте исследовать возможности помочь.",
	"💫 Вы настоящий активист добра, спасибо за интерес к инициативам!",
	"🙌 Здорово! Чем больше просмотров, тем больше добрых дел вокруг.",
}

// BuildStatisticsMessage renders the statistics text the notifier sends or
// edits. The embedded date is what keeps the edit reuse within one day.
func BuildStatisticsMessage(sessionViews, totalViews int64, now time.Time, phrase string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s на %s\n\n", statsMarker, now.Format(dateLayout))
	fmt.Fprintf(&b, "👀 %s: %s\n", sessionMarker, formatViews(sessionViews))
	fmt.Fprintf(&b, "🌟 %s: %s\n\n", totalMarker, formatInitiatives(totalViews))
	b.WriteString(phrase)

	return b.String()
}

// RandomPhrase picks one motivational phrase.
func RandomPhrase() string {
	return motivationalPhrases[rand.Intn(len(motivationalPhrases))]
}

// IsSameDayStatistics reports whether text is a statistics message this bot
// produced today: it must carry every marker and today's date.
func IsSameDayStatistics(text string, now time.Time) bool {
	return strings.Contains(text, statsMarker) &&
		strings.Contains(text, sessionMarker) &&
		strings.Contains(text, totalMarker) &&
		strings.Contains(text, now.Format(dateLayout))
}

func formatViews(count int64) string {
	if count == 0 {
		return "0 просмотров"
	}
	if count == 1 {
		return "1 просмотр"
	}
	if count >= 2 && count <= 4 {
		return fmt.Sprintf("%d просмотра", count)
	}
	return fmt.Sprintf("%d просмотров", count)
}

func formatInitiatives(count int64) string {
	if count == 1 {
		return "1 инициатива"
	}
	if count >= 2 && count <= 4 {
		return fmt.Sprintf("%d инициативы", count)
	}
	return fmt.Sprintf("%d инициатив", count)
}
