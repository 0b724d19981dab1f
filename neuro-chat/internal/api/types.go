package api

import "time"

type StateDistribution struct {
	Focused    int `json:"focused"`
	Relaxed    int `json:"relaxed"`
	Neutral    int `json:"neutral"`
	Distracted int `json:"distracted"`
}

type TimePoint struct {
	Time  string `json:"time"`
	Value int    `json:"value"`
}

// AnalyticsSnapshot is the body of GET /api/analytics.
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

type ChatHistorySummary struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Timestamp          time.Time `json:"timestamp"`
	LastMessageSnippet string    `json:"lastMessageSnippet"`
}

type ChatDetailMessage struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsUser    bool   `json:"isUser"`
	Timestamp string `json:"timestamp"`
}

type ChatDetail struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Timestamp time.Time           `json:"timestamp"`
	Messages  []ChatDetailMessage `json:"messages"`
}

type UserProfile struct {
	ID             string    `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	JoinedAt       time.Time `json:"joinedAt"`
}

// ProfileUpdate is the body of POST /api/profile/update. Nil fields are
// left unchanged by the server.
type ProfileUpdate struct {
	FullName       *string `json:"fullName,omitempty"`
	Email          *string `json:"email,omitempty"`
	ProfilePicture *string `json:"profilePicture,omitempty"`
}

type ProfileUpdateResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Profile *UserProfile `json:"profile,omitempty"`
}

type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AccountSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type SignupResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	User    AccountSummary `json:"user"`
}

type BrainData struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

type AnalysisData struct {
	Total  int         `json:"total"`
	Recent []BrainData `json:"recent"`
}

type ReportData struct {
	Total int `json:"total"`
}

type MentalStateData struct {
	State      string `json:"state"`
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
}

type Recommendation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// HomeData is the body of GET /api/home.
type HomeData struct {
	Analyses        AnalysisData     `json:"analyses"`
	Reports         ReportData       `json:"reports"`
	LiveData        []BrainData      `json:"liveData"`
	MentalState     MentalStateData  `json:"mentalState"`
	Recommendations []Recommendation `json:"recommendations"`
}

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
