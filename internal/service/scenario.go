package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"market-scenario/config"
	"market-scenario/internal/chart"
	"market-scenario/internal/dto"
	"market-scenario/internal/model"
	"market-scenario/internal/notifier"
	"market-scenario/internal/parser"
	"market-scenario/internal/repository"
	"market-scenario/pkg/logger"
	"market-scenario/pkg/utils"

	"gorm.io/datatypes"
)

var (
	ErrScenarioNotFound   = errors.New("scenario not found")
	ErrCommentaryDisabled = errors.New("ai commentary is not enabled")
)

type ScenarioService interface {
	Parse(text string) *dto.ScenarioDocument
	Save(ctx context.Context, req dto.SaveScenarioRequest) (*dto.StoredScenario, error)
	Get(ctx context.Context, id uint) (*dto.StoredScenario, error)
	List(ctx context.Context, param model.ListScenariosParam) ([]dto.StoredScenario, error)
	Delete(ctx context.Context, id uint) (bool, error)
	SearchByDateRange(ctx context.Context, param model.SearchScenariosParam) ([]dto.StoredScenario, error)
	Commentary(ctx context.Context, id uint) (string, error)
	RenderChart(ctx context.Context, w io.Writer, id uint, rng, interval string) error
}

type scenarioService struct {
	cfg        *config.Config
	log        *logger.Logger
	parser     *parser.Parser
	repo       repository.ScenarioRepository
	aiRepo     repository.AIRepository
	marketData MarketDataService
	renderer   *chart.Renderer
	notify     notifier.Notifier
}

func NewScenarioService(
	cfg *config.Config,
	log *logger.Logger,
	p *parser.Parser,
	repo repository.ScenarioRepository,
	aiRepo repository.AIRepository,
	marketData MarketDataService,
	renderer *chart.Renderer,
	notify notifier.Notifier,
) ScenarioService {
	return &scenarioService{
		cfg:        cfg,
		log:        log,
		parser:     p,
		repo:       repo,
		aiRepo:     aiRepo,
		marketData: marketData,
		renderer:   renderer,
		notify:     notify,
	}
}

// Parse runs the extraction engine without persisting anything.
func (s *scenarioService) Parse(text string) *dto.ScenarioDocument {
	return s.parser.Parse(text)
}

// Save parses the narrative, persists it, and pushes an alert notification
// when the document carries alert notes. Notification failures never fail
// the save.
func (s *scenarioService) Save(ctx context.Context, req dto.SaveScenarioRequest) (*dto.StoredScenario, error) {
	doc := s.parser.Parse(req.Text)

	parsedData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal parsed document: %w", err)
	}

	scenario := &model.Scenario{
		Symbol:       doc.Symbol,
		RawText:      req.Text,
		ParsedData:   datatypes.JSON(parsedData),
		AnalysisDate: doc.AnalysisDate,
		Notes:        req.Notes,
	}

	if err := s.repo.Create(ctx, scenario); err != nil {
		return nil, fmt.Errorf("failed to save scenario: %w", err)
	}

	s.log.InfoContext(ctx, "Scenario saved",
		logger.IntField("scenario_id", int(scenario.ID)),
		logger.StringField("symbol", scenario.Symbol),
		logger.IntField("support_levels", len(doc.SupportLevels)),
		logger.IntField("resistance_levels", len(doc.ResistanceLevels)),
	)

	if doc.HasAlertNotes() {
		utils.GoSafe(func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Telegram.TimeoutDuration)
			defer cancel()
			if err := s.notify.NotifyScenario(notifyCtx, scenario, doc); err != nil {
				s.log.Error("Failed to notify scenario", logger.ErrorField(err))
			}
		})
	}

	return s.toStoredScenario(scenario, doc), nil
}

func (s *scenarioService) Get(ctx context.Context, id uint) (*dto.StoredScenario, error) {
	scenario, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get scenario: %w", err)
	}
	if scenario == nil {
		return nil, nil
	}

	doc, err := documentFromModel(scenario)
	if err != nil {
		return nil, err
	}
	return s.toStoredScenario(scenario, doc), nil
}

func (s *scenarioService) List(ctx context.Context, param model.ListScenariosParam) ([]dto.StoredScenario, error) {
	scenarios, err := s.repo.List(ctx, param)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	return s.toStoredScenarios(ctx, scenarios)
}

func (s *scenarioService) Delete(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete scenario: %w", err)
	}
	return deleted, nil
}

func (s *scenarioService) SearchByDateRange(ctx context.Context, param model.SearchScenariosParam) ([]dto.StoredScenario, error) {
	scenarios, err := s.repo.SearchByDateRange(ctx, param)
	if err != nil {
		return nil, fmt.Errorf("failed to search scenarios: %w", err)
	}
	return s.toStoredScenarios(ctx, scenarios)
}

// Commentary asks the AI repository for a short advisory text on a stored
// scenario. Returns ErrCommentaryDisabled when the AI integration is off.
func (s *scenarioService) Commentary(ctx context.Context, id uint) (string, error) {
	if s.aiRepo == nil {
		return "", ErrCommentaryDisabled
	}

	scenario, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to get scenario: %w", err)
	}
	if scenario == nil {
		return "", fmt.Errorf("scenario %d: %w", id, ErrScenarioNotFound)
	}

	doc, err := documentFromModel(scenario)
	if err != nil {
		return "", err
	}

	return s.aiRepo.CommentScenario(ctx, doc)
}

// RenderChart joins the stored document with fresh market data for its
// symbol and streams the chart HTML to w.
func (s *scenarioService) RenderChart(ctx context.Context, w io.Writer, id uint, rng, interval string) error {
	scenario, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get scenario: %w", err)
	}
	if scenario == nil {
		return fmt.Errorf("scenario %d: %w", id, ErrScenarioNotFound)
	}

	doc, err := documentFromModel(scenario)
	if err != nil {
		return err
	}

	data, err := s.marketData.Get(ctx, dto.GetMarketDataParam{
		Symbol:   scenario.Symbol,
		Range:    rng,
		Interval: interval,
	})
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s 市場分析チャート", dto.SymbolDisplayName(scenario.Symbol))
	return s.renderer.Render(w, title, data, doc)
}

func (s *scenarioService) toStoredScenarios(ctx context.Context, scenarios []model.Scenario) ([]dto.StoredScenario, error) {
	out := make([]dto.StoredScenario, 0, len(scenarios))
	for i := range scenarios {
		doc, err := documentFromModel(&scenarios[i])
		if err != nil {
			s.log.WarnContext(ctx, "Skipping scenario with unreadable parsed data",
				logger.IntField("scenario_id", int(scenarios[i].ID)),
				logger.ErrorField(err),
			)
			continue
		}
		out = append(out, *s.toStoredScenario(&scenarios[i], doc))
	}
	return out, nil
}

func (s *scenarioService) toStoredScenario(scenario *model.Scenario, doc *dto.ScenarioDocument) *dto.StoredScenario {
	return &dto.StoredScenario{
		ID:           scenario.ID,
		CreatedAt:    scenario.CreatedAt.Format(time.RFC3339),
		Symbol:       scenario.Symbol,
		AnalysisDate: scenario.AnalysisDate,
		Notes:        scenario.Notes,
		Document:     doc,
	}
}

func documentFromModel(scenario *model.Scenario) (*dto.ScenarioDocument, error) {
	doc := dto.NewScenarioDocument("")
	if err := json.Unmarshal(scenario.ParsedData, doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal parsed document: %w", err)
	}
	return doc, nil
}
