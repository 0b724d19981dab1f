package domain

import (
	"time"

	"github.com/weiawesome/neurolab/pkg/database"
)

// TestResult is one recorded brain test session.
type TestResult struct {
	ID              string    `json:"id"`
	Label           string    `json:"label"`
	Description     string    `json:"description"`
	Timestamp       string    `json:"timestamp"`
	RecordedAt      time.Time `json:"recordedAt"`
	AttentionScore  int       `json:"attentionScore"`
	CognitiveLead   string    `json:"cognitiveLead"`
	MentalFatigue   int       `json:"mentalFatigue"`
	RelaxationLevel int       `json:"relaxationLevel"`
	Analysis        string    `json:"analysis"`
	Recommendations []string  `json:"recommendations"`
	WaveData        []int     `json:"waveData,omitempty"`
}

// TestResultModel is the GORM model for test_results table.
type TestResultModel struct {
	ID              string               `gorm:"type:varchar(36);primaryKey"`
	Label           string               `gorm:"type:varchar(50);index;not null"`
	Description     string               `gorm:"type:text"`
	RecordedAt      time.Time            `gorm:"index"`
	AttentionScore  int                  `gorm:"not null"`
	CognitiveLead   string               `gorm:"type:varchar(100)"`
	MentalFatigue   int                  `gorm:"not null"`
	RelaxationLevel int                  `gorm:"not null"`
	Analysis        string               `gorm:"type:text"`
	Recommendations database.StringArray `gorm:"type:text"`
	WaveData        database.IntArray    `gorm:"type:text"`
}

// TableName specifies the table name for TestResultModel.
func (TestResultModel) TableName() string {
	return "test_results"
}

// ToDomain converts TestResultModel to TestResult.
func (m *TestResultModel) ToDomain() *TestResult {
	return &TestResult{
		ID:              m.ID,
		Label:           m.Label,
		Description:     m.Description,
		Timestamp:       m.RecordedAt.Format(DisplayTimeLayout),
		RecordedAt:      m.RecordedAt,
		AttentionScore:  m.AttentionScore,
		CognitiveLead:   m.CognitiveLead,
		MentalFatigue:   m.MentalFatigue,
		RelaxationLevel: m.RelaxationLevel,
		Analysis:        m.Analysis,
		Recommendations: []string(m.Recommendations),
		WaveData:        []int(m.WaveData),
	}
}
