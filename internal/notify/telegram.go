package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"dualtrack/internal/model"
	"dualtrack/internal/service"
)

// TelegramNotifier pushes a once-a-day summary of today's occurrences
// and point totals to a single chat. Purely outbound; the service has
// no interactive bot surface.
type TelegramNotifier struct {
	api          *tgbotapi.BotAPI
	chatID       int64
	materializer *service.Materializer
	scoring      *service.ScoringService
	log          *zap.Logger
}

func NewTelegramNotifier(
	token string,
	chatID int64,
	materializer *service.Materializer,
	scoring *service.ScoringService,
	log *zap.Logger,
) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	log.Info("telegram notifier authorized", zap.String("account", api.Self.UserName))

	return &TelegramNotifier{
		api:          api,
		chatID:       chatID,
		materializer: materializer,
		scoring:      scoring,
		log:          log,
	}, nil
}

// SendDailySummary materializes today (so the summary never shows a
// half-built day) and sends the dashboard snapshot.
func (n *TelegramNotifier) SendDailySummary(ctx context.Context, now time.Time) error {
	occurrences, err := n.materializer.EnsureDay(ctx, now)
	if err != nil {
		return fmt.Errorf("materialize day: %w", err)
	}
	score, err := n.scoring.ScoreDay(ctx, now)
	if err != nil {
		return fmt.Errorf("score day: %w", err)
	}

	text := buildSummary(now, occurrences, score)
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send summary: %w", err)
	}

	n.log.Info("daily summary sent",
		zap.Int("occurrences", len(occurrences)),
		zap.Int("delta", score.Delta))
	return nil
}

func buildSummary(now time.Time, occurrences []model.TaskOccurrence, score service.Score) string {
	var builder strings.Builder
	builder.WriteString("📋 <b>Resumo do dia</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s, %s\n\n", service.WeekdayLabel(now.Weekday()), now.Format("02.01.2006")))

	if len(occurrences) == 0 {
		builder.WriteString("— nenhuma tarefa para hoje\n")
	}
	for _, occ := range occurrences {
		icon := "⬜"
		if occ.Completed {
			icon = "✅"
		}
		builder.WriteString(fmt.Sprintf("%s %s\n", icon, html.EscapeString(occ.Task.Description)))
	}

	builder.WriteString(fmt.Sprintf("\n🤖 %d × 🙂 %d (Δ %d)\n", score.Robot, score.User, score.Delta))
	return strings.TrimSpace(builder.String())
}
