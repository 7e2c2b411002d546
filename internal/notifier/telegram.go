package notifier

import (
	"context"
	"fmt"
	"strings"

	"market-scenario/config"
	"market-scenario/internal/dto"
	"market-scenario/internal/model"
	"market-scenario/pkg/logger"
	"market-scenario/pkg/utils"

	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// telegramNotifier sends a summary message to a fixed chat whenever a saved
// scenario carries alert notes. Sends are rate limited globally.
type telegramNotifier struct {
	cfg     *config.TelegramConfig
	log     *logger.Logger
	bot     *telebot.Bot
	limiter *rate.Limiter
}

func NewTelegram(cfg *config.TelegramConfig, log *logger.Logger) (Notifier, error) {
	// No poller: this bot only pushes messages.
	pref := telebot.Settings{
		Token: cfg.BotToken,
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &telegramNotifier{
		cfg:     cfg,
		log:     log,
		bot:     bot,
		limiter: rate.NewLimiter(rate.Limit(cfg.MaxRequestPerSecond), cfg.MaxRequestPerSecond),
	}, nil
}

func (t *telegramNotifier) NotifyScenario(ctx context.Context, scenario *model.Scenario, doc *dto.ScenarioDocument) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}

	message := t.formatScenario(scenario, doc)
	if _, err := t.bot.Send(telebot.ChatID(t.cfg.ChatID), message); err != nil {
		t.log.ErrorContext(ctx, "Failed to send telegram notification",
			logger.ErrorField(err),
			logger.IntField("scenario_id", int(scenario.ID)),
		)
		return fmt.Errorf("failed to send telegram notification: %w", err)
	}

	return nil
}

func (t *telegramNotifier) formatScenario(scenario *model.Scenario, doc *dto.ScenarioDocument) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📈 シナリオ保存: %s\n", dto.SymbolDisplayName(doc.Symbol)))
	if doc.AnalysisDate != "" {
		b.WriteString(fmt.Sprintf("分析日時: %s\n", doc.AnalysisDate))
	}
	b.WriteString(fmt.Sprintf("サポート %d本 / レジスタンス %d本 / 価格帯 %d\n",
		len(doc.SupportLevels), len(doc.ResistanceLevels),
		len(doc.SupportZones)+len(doc.ResistanceZones)))

	for _, zone := range doc.SupportZones {
		b.WriteString(fmt.Sprintf("・%s\n", zone.Description))
	}
	for _, zone := range doc.ResistanceZones {
		b.WriteString(fmt.Sprintf("・%s\n", zone.Description))
	}

	for _, note := range doc.Notes {
		b.WriteString(fmt.Sprintf("⚠️ %s\n", note))
	}

	if len(doc.SupportLevels) > 0 {
		prices := make([]string, 0, len(doc.SupportLevels))
		for _, l := range doc.SupportLevels {
			prices = append(prices, utils.FormatPrice(l.Price))
		}
		b.WriteString(fmt.Sprintf("S: %s\n", strings.Join(prices, " / ")))
	}
	if len(doc.ResistanceLevels) > 0 {
		prices := make([]string, 0, len(doc.ResistanceLevels))
		for _, l := range doc.ResistanceLevels {
			prices = append(prices, utils.FormatPrice(l.Price))
		}
		b.WriteString(fmt.Sprintf("R: %s\n", strings.Join(prices, " / ")))
	}

	return b.String()
}
