package service

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"market-scenario/config"
	"market-scenario/internal/dto"
	"market-scenario/internal/model"
	"market-scenario/internal/notifier"
	"market-scenario/internal/repository"
	"market-scenario/pkg/cache"
	"market-scenario/pkg/logger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const alertNarrative = `ゴールド 2025年10月21日 8時00分。
日足ベースのサポートラインは4317近辺と4218近辺。
週足ベースのレジスタンスラインは4443近辺。
4317近辺～4320近辺のサポート帯。急落に注意。`

type stubYahooRepo struct {
	mu    sync.Mutex
	calls int
	data  *dto.MarketData
	err   error
}

func (s *stubYahooRepo) Get(ctx context.Context, param dto.GetMarketDataParam) (*dto.MarketData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func (s *stubYahooRepo) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubAIRepo struct {
	commentary string
}

func (s *stubAIRepo) CommentScenario(ctx context.Context, doc *dto.ScenarioDocument) (string, error) {
	return s.commentary, nil
}

type recordingNotifier struct {
	notified chan *dto.ScenarioDocument
}

func (r *recordingNotifier) NotifyScenario(ctx context.Context, scenario *model.Scenario, doc *dto.ScenarioDocument) error {
	r.notified <- doc
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.Cache{
			DefaultExpiration: time.Minute,
			CleanupInterval:   time.Minute,
		},
		Scheduler: config.Scheduler{
			Enabled:         true,
			RefreshSpec:     "*/30 * * * *",
			RefreshScenario: 10,
		},
		YahooFinance: config.YahooFinance{
			DefaultRange:    "1mo",
			DefaultInterval: "1h",
		},
		Telegram: config.TelegramConfig{
			TimeoutDuration: time.Second,
		},
		Chart: config.Chart{Width: "1200px", Height: "700px"},
	}
}

func sampleMarketData() *dto.MarketData {
	return &dto.MarketData{
		MarketPrice: 4320,
		Range:       "1mo",
		Interval:    "1h",
		OHLCV: []dto.OHLCV{
			{Open: 4300, High: 4330, Low: 4290, Close: 4320, Volume: 100, Timestamp: 1761033600},
			{Open: 4320, High: 4350, Low: 4310, Close: 4340, Volume: 120, Timestamp: 1761037200},
		},
	}
}

func newTestService(t *testing.T, yahoo repository.YahooFinanceRepository, notify notifier.Notifier) (*Service, repository.ScenarioRepository) {
	return newTestServiceAI(t, yahoo, notify, nil)
}

func newTestServiceAI(t *testing.T, yahoo repository.YahooFinanceRepository, notify notifier.Notifier, ai repository.AIRepository) (*Service, repository.ScenarioRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Scenario{}))

	log, err := logger.New("error", "console")
	require.NoError(t, err)

	repo := &repository.Repository{
		ScenarioRepo:     repository.NewScenarioRepository(db),
		YahooFinanceRepo: yahoo,
		GeminiAIRepo:     ai,
	}

	return NewService(testConfig(), log, repo, cache.NewCache(time.Minute, time.Minute), notify), repo.ScenarioRepo
}

func TestScenarioService_SaveAndGet(t *testing.T) {
	svc, _ := newTestService(t, &stubYahooRepo{data: sampleMarketData()}, notifier.NewNoop())
	ctx := context.Background()

	stored, err := svc.ScenarioService.Save(ctx, dto.SaveScenarioRequest{
		Text:  alertNarrative,
		Notes: "morning session",
	})
	require.NoError(t, err)
	require.NotZero(t, stored.ID)
	assert.Equal(t, dto.SymbolGold, stored.Symbol)
	assert.Equal(t, "2025-10-21 08:00", stored.AnalysisDate)
	assert.Equal(t, "morning session", stored.Notes)
	require.NotNil(t, stored.Document)
	assert.Len(t, stored.Document.SupportLevels, 2)

	got, err := svc.ScenarioService.Get(ctx, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, stored.Document, got.Document)
}

func TestScenarioService_Get_NotFound(t *testing.T) {
	svc, _ := newTestService(t, &stubYahooRepo{}, notifier.NewNoop())

	got, err := svc.ScenarioService.Get(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScenarioService_SaveNotifiesOnAlertNotes(t *testing.T) {
	notify := &recordingNotifier{notified: make(chan *dto.ScenarioDocument, 1)}
	svc, _ := newTestService(t, &stubYahooRepo{}, notify)

	_, err := svc.ScenarioService.Save(context.Background(), dto.SaveScenarioRequest{Text: alertNarrative})
	require.NoError(t, err)

	select {
	case doc := <-notify.notified:
		assert.Contains(t, doc.Notes, "急落に注意が必要")
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification for a scenario with alert notes")
	}
}

func TestScenarioService_SaveSkipsNotifyWithoutAlertNotes(t *testing.T) {
	notify := &recordingNotifier{notified: make(chan *dto.ScenarioDocument, 1)}
	svc, _ := newTestService(t, &stubYahooRepo{}, notify)

	_, err := svc.ScenarioService.Save(context.Background(), dto.SaveScenarioRequest{
		Text: "日足ベースのサポートラインは4317近辺",
	})
	require.NoError(t, err)

	select {
	case <-notify.notified:
		t.Fatal("unexpected notification for a scenario without alert notes")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestScenarioService_ListAndDelete(t *testing.T) {
	svc, _ := newTestService(t, &stubYahooRepo{}, notifier.NewNoop())
	ctx := context.Background()

	first, err := svc.ScenarioService.Save(ctx, dto.SaveScenarioRequest{Text: "ドル円 日足ベースのサポートラインは15000近辺"})
	require.NoError(t, err)
	_, err = svc.ScenarioService.Save(ctx, dto.SaveScenarioRequest{Text: "ゴールド 日足ベースのサポートラインは4317近辺"})
	require.NoError(t, err)

	all, err := svc.ScenarioService.List(ctx, model.ListScenariosParam{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	usdjpy, err := svc.ScenarioService.List(ctx, model.ListScenariosParam{Symbol: "USDJPY=X"})
	require.NoError(t, err)
	require.Len(t, usdjpy, 1)
	assert.Equal(t, first.ID, usdjpy[0].ID)

	deleted, err := svc.ScenarioService.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.ScenarioService.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestScenarioService_SearchByDateRange(t *testing.T) {
	svc, _ := newTestService(t, &stubYahooRepo{}, notifier.NewNoop())
	ctx := context.Background()

	stored, err := svc.ScenarioService.Save(ctx, dto.SaveScenarioRequest{Text: alertNarrative})
	require.NoError(t, err)

	now := time.Now()
	found, err := svc.ScenarioService.SearchByDateRange(ctx, model.SearchScenariosParam{
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, stored.ID, found[0].ID)

	none, err := svc.ScenarioService.SearchByDateRange(ctx, model.SearchScenariosParam{
		StartDate: now.Add(-2 * time.Hour),
		EndDate:   now.Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestScenarioService_CommentaryDisabled(t *testing.T) {
	svc, _ := newTestService(t, &stubYahooRepo{}, notifier.NewNoop())

	_, err := svc.ScenarioService.Commentary(context.Background(), 1)
	require.ErrorIs(t, err, ErrCommentaryDisabled)
}

func TestScenarioService_Commentary(t *testing.T) {
	svc, _ := newTestServiceAI(t, &stubYahooRepo{}, notifier.NewNoop(), &stubAIRepo{commentary: "レンジ内の推移を想定します。"})
	ctx := context.Background()

	stored, err := svc.ScenarioService.Save(ctx, dto.SaveScenarioRequest{Text: alertNarrative})
	require.NoError(t, err)

	commentary, err := svc.ScenarioService.Commentary(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "レンジ内の推移を想定します。", commentary)

	_, err = svc.ScenarioService.Commentary(ctx, stored.ID+100)
	require.ErrorIs(t, err, ErrScenarioNotFound)
}

func TestScenarioService_RenderChart(t *testing.T) {
	svc, _ := newTestService(t, &stubYahooRepo{data: sampleMarketData()}, notifier.NewNoop())
	ctx := context.Background()

	stored, err := svc.ScenarioService.Save(ctx, dto.SaveScenarioRequest{Text: alertNarrative})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.ScenarioService.RenderChart(ctx, &buf, stored.ID, "", ""))

	html := buf.String()
	assert.True(t, strings.Contains(html, "echarts"))
	assert.Contains(t, html, "日足ベースのサポート")
}

func TestScenarioService_RenderChart_NotFound(t *testing.T) {
	svc, _ := newTestService(t, &stubYahooRepo{data: sampleMarketData()}, notifier.NewNoop())

	var buf bytes.Buffer
	err := svc.ScenarioService.RenderChart(context.Background(), &buf, 999, "", "")
	require.ErrorIs(t, err, ErrScenarioNotFound)
	assert.Zero(t, buf.Len())
}

func TestMarketDataService_GetUsesCache(t *testing.T) {
	yahoo := &stubYahooRepo{data: sampleMarketData()}
	svc, _ := newTestService(t, yahoo, notifier.NewNoop())
	ctx := context.Background()

	first, err := svc.MarketDataService.Get(ctx, dto.GetMarketDataParam{Symbol: "GC=F"})
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := svc.MarketDataService.Get(ctx, dto.GetMarketDataParam{Symbol: "GC=F"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, yahoo.callCount())

	// A different interval is a different cache entry.
	_, err = svc.MarketDataService.Get(ctx, dto.GetMarketDataParam{Symbol: "GC=F", Interval: "1d"})
	require.NoError(t, err)
	assert.Equal(t, 2, yahoo.callCount())
}

func TestSchedulerService_RefreshOnce(t *testing.T) {
	yahoo := &stubYahooRepo{data: sampleMarketData()}
	svc, repo := newTestService(t, yahoo, notifier.NewNoop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Scenario{
		Symbol: "GC=F", RawText: "x", ParsedData: []byte(`{}`),
	}))
	require.NoError(t, repo.Create(ctx, &model.Scenario{
		Symbol: "USDJPY=X", RawText: "x", ParsedData: []byte(`{}`),
	}))

	require.NoError(t, svc.SchedulerService.RefreshOnce(ctx))
	assert.Equal(t, 2, yahoo.callCount())

	// The warmed cache serves the next Get without a fetch.
	_, err := svc.MarketDataService.Get(ctx, dto.GetMarketDataParam{Symbol: "GC=F"})
	require.NoError(t, err)
	assert.Equal(t, 2, yahoo.callCount())
}

func TestSchedulerService_RefreshOnce_Empty(t *testing.T) {
	yahoo := &stubYahooRepo{data: sampleMarketData()}
	svc, _ := newTestService(t, yahoo, notifier.NewNoop())

	require.NoError(t, svc.SchedulerService.RefreshOnce(context.Background()))
	assert.Zero(t, yahoo.callCount())
}
