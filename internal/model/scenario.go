package model

import (
	"time"

	"gorm.io/datatypes"
)

// Scenario is one saved scenario narrative together with its parsed document.
// ParsedData holds the JSON form of dto.ScenarioDocument and reconstructs it
// exactly; the raw text is also kept verbatim for re-parsing.
type Scenario struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Symbol       string         `gorm:"not null;index" json:"symbol"`
	RawText      string         `gorm:"not null" json:"raw_text"`
	ParsedData   datatypes.JSON `gorm:"not null" json:"parsed_data"`
	AnalysisDate string         `json:"analysis_date"`
	Notes        string         `json:"notes"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Scenario) TableName() string {
	return "scenarios"
}

type ListScenariosParam struct {
	Symbol string
	Limit  int
}

type SearchScenariosParam struct {
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
}
