package domain

import (
	"github.com/weiawesome/neurolab/pkg/database"
)

// StateDistribution is the share of each mental state, in percent.
type StateDistribution struct {
	Focused    int `json:"focused"`
	Relaxed    int `json:"relaxed"`
	Neutral    int `json:"neutral"`
	Distracted int `json:"distracted"`
}

// TimePoint is one sample of the analytics time series.
type TimePoint struct {
	Time  string `json:"time"`
	Value int    `json:"value"`
}

// AnalyticsSnapshot is the payload of GET /api/analytics.
type AnalyticsSnapshot struct {
	AttentionScore    int               `json:"attentionScore"`
	CognitiveLoad     int               `json:"cognitiveLoad"`
	MentalFatigue     int               `json:"mentalFatigue"`
	RelaxationLevel   int               `json:"relaxationLevel"`
	Confidence        int               `json:"confidence"`
	StateDistribution StateDistribution `json:"stateDistribution"`
	Recommendations   []string          `json:"recommendations"`
	TimeSeriesData    []TimePoint       `json:"timeSeriesData"`
}

// AnalyticsModel is the GORM model for analytics_snapshots table.
type AnalyticsModel struct {
	ID                uint                 `gorm:"primaryKey"`
	AttentionScore    int                  `gorm:"not null"`
	CognitiveLoad     int                  `gorm:"not null"`
	MentalFatigue     int                  `gorm:"not null"`
	RelaxationLevel   int                  `gorm:"not null"`
	Confidence        int                  `gorm:"not null"`
	StateDistribution StateDistribution    `gorm:"serializer:json;type:text"`
	Recommendations   database.StringArray `gorm:"type:text"`
	TimeSeriesData    []TimePoint          `gorm:"serializer:json;type:text"`
}

// TableName specifies the table name for AnalyticsModel.
func (AnalyticsModel) TableName() string {
	return "analytics_snapshots"
}

// ToDomain converts AnalyticsModel to AnalyticsSnapshot.
func (m *AnalyticsModel) ToDomain() *AnalyticsSnapshot {
	return &AnalyticsSnapshot{
		AttentionScore:    m.AttentionScore,
		CognitiveLoad:     m.CognitiveLoad,
		MentalFatigue:     m.MentalFatigue,
		RelaxationLevel:   m.RelaxationLevel,
		Confidence:        m.Confidence,
		StateDistribution: m.StateDistribution,
		Recommendations:   []string(m.Recommendations),
		TimeSeriesData:    m.TimeSeriesData,
	}
}

// BrainData is one live brain activity sample.
type BrainData struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

// AnalysisData summarises recorded analyses.
type AnalysisData struct {
	Total  int         `json:"total"`
	Recent []BrainData `json:"recent"`
}

// ReportData summarises generated reports.
type ReportData struct {
	Total int `json:"total"`
}

// MentalStateData is the headline mental state on the home screen.
type MentalStateData struct {
	State      string `json:"state"`
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
}

// Recommendation is a home screen recommendation card.
type Recommendation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// HomeData is the payload of GET /api/home.
type HomeData struct {
	Analyses        AnalysisData     `json:"analyses"`
	Reports         ReportData       `json:"reports"`
	LiveData        []BrainData      `json:"liveData"`
	MentalState     MentalStateData  `json:"mentalState"`
	Recommendations []Recommendation `json:"recommendations"`
}
