package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"market-scenario/config"
	"market-scenario/internal/dto"
	"market-scenario/pkg/logger"
	"market-scenario/pkg/utils"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

type AIRepository interface {
	CommentScenario(ctx context.Context, doc *dto.ScenarioDocument) (string, error)
}

// geminiAIRepository generates a short advisory commentary for a parsed
// scenario via the Google Gemini API. Commentary is never stored in the
// parsed document itself.
type geminiAIRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger) (AIRepository, error) {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiAIRepository{
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
		genAiClient:    genAiClient,
	}, nil
}

func (r *geminiAIRepository) CommentScenario(ctx context.Context, doc *dto.ScenarioDocument) (string, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for gemini request limit: %w", err)
	}

	prompt := r.promptCommentScenario(doc)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.BaseModel, contents, nil)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to send request to gemini", logger.ErrorField(err))
		return "", fmt.Errorf("failed to send request to gemini: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("invalid response from Gemini API: no content found")
	}

	return text, nil
}

func (r *geminiAIRepository) promptCommentScenario(doc *dto.ScenarioDocument) string {
	var b strings.Builder

	b.WriteString("あなたは経験豊富なテクニカルアナリストです。以下の環境認識シナリオを3文以内で講評してください。\n")
	b.WriteString(fmt.Sprintf("銘柄: %s\n", dto.SymbolDisplayName(doc.Symbol)))
	if doc.AnalysisDate != "" {
		b.WriteString(fmt.Sprintf("分析日時: %s\n", doc.AnalysisDate))
	}

	writeLevels := func(label string, levels []dto.PriceLevel) {
		if len(levels) == 0 {
			return
		}
		prices := make([]string, 0, len(levels))
		for _, l := range levels {
			prices = append(prices, fmt.Sprintf("%s (%s)", utils.FormatPrice(l.Price), l.Description))
		}
		b.WriteString(fmt.Sprintf("%s: %s\n", label, strings.Join(prices, ", ")))
	}
	writeLevels("サポートライン", doc.SupportLevels)
	writeLevels("レジスタンスライン", doc.ResistanceLevels)

	for _, z := range append(append([]dto.PriceZone{}, doc.SupportZones...), doc.ResistanceZones...) {
		b.WriteString(fmt.Sprintf("価格帯: %s\n", z.Description))
	}

	for _, note := range doc.Notes {
		b.WriteString(fmt.Sprintf("メモ: %s\n", note))
	}

	return b.String()
}
