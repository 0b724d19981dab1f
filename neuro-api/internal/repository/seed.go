package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/weiawesome/neurolab/neuro-api/internal/domain"
	"github.com/weiawesome/neurolab/pkg/database"
)

// DefaultProfileID is the profile served when a request names no user.
const DefaultProfileID = "user-1"

// Models lists every table owned by the mock backend.
func Models() []interface{} {
	return []interface{}{
		&domain.ChatModel{},
		&domain.ChatMessageModel{},
		&domain.AnalyticsModel{},
		&domain.ProfileModel{},
		&domain.AccountModel{},
		&domain.TestResultModel{},
	}
}

// Seed fills empty tables with the canned fixtures. Tables that already
// hold rows are left untouched, so restarting against a file database
// keeps edits made through the API.
func Seed(ctx context.Context, db *gorm.DB, now time.Time) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			model interface{}
			rows  func() interface{}
		}{
			{&domain.AnalyticsModel{}, func() interface{} { return seedAnalytics() }},
			{&domain.ProfileModel{}, func() interface{} { rows := seedProfiles(now); return &rows }},
			{&domain.ChatModel{}, func() interface{} { rows := seedChats(now); return &rows }},
			{&domain.TestResultModel{}, func() interface{} { rows := seedTestResults(now); return &rows }},
		}

		for _, step := range steps {
			var count int64
			if err := tx.Model(step.model).Count(&count).Error; err != nil {
				return fmt.Errorf("failed to count %T: %w", step.model, err)
			}
			if count > 0 {
				continue
			}
			if err := tx.Create(step.rows()).Error; err != nil {
				return fmt.Errorf("failed to seed %T: %w", step.model, err)
			}
		}
		return nil
	})
}

func seedAnalytics() *domain.AnalyticsModel {
	return &domain.AnalyticsModel{
		AttentionScore:  72,
		CognitiveLoad:   65,
		MentalFatigue:   28,
		RelaxationLevel: 42,
		Confidence:      85,
		StateDistribution: domain.StateDistribution{
			Focused:    45,
			Relaxed:    25,
			Neutral:    20,
			Distracted: 10,
		},
		Recommendations: database.StringArray{
			"Consider short breaks every 25 minutes to maintain optimal focus levels.",
			"The subject shows good attention patterns but may benefit from mindfulness exercises to reduce cognitive load.",
			"Hydration and proper posture could improve sustained attention duration.",
		},
		TimeSeriesData: []domain.TimePoint{
			{Time: "0 min", Value: 30},
			{Time: "1 min", Value: 45},
			{Time: "2 min", Value: 65},
			{Time: "3 min", Value: 55},
			{Time: "4 min", Value: 70},
			{Time: "5 min", Value: 85},
		},
	}
}

func seedProfiles(now time.Time) []domain.ProfileModel {
	return []domain.ProfileModel{
		{
			ID:        DefaultProfileID,
			FullName:  "Alex Morgan",
			Email:     "alex.morgan@neurolab.app",
			CreatedAt: now.AddDate(0, -3, 0),
		},
	}
}

func seedChats(now time.Time) []domain.ChatModel {
	type line struct {
		user bool
		text string
	}
	convo := func(id, title string, at time.Time, lines ...line) domain.ChatModel {
		m := domain.ChatModel{ID: id, Title: title, CreatedAt: at, UpdatedAt: at}
		for i, l := range lines {
			m.Messages = append(m.Messages, domain.ChatMessageModel{
				ID:       fmt.Sprintf("%s-msg-%d", id, i+1),
				ChatID:   id,
				Position: i,
				Text:     l.text,
				IsUser:   l.user,
				SentAt:   at.Add(time.Duration(i-len(lines)+1) * time.Minute),
			})
		}
		return m
	}

	return []domain.ChatModel{
		convo("chat-1", "Understanding EEG", now.Add(-2*time.Hour),
			line{true, "What does an EEG measure?"},
			line{false, "An EEG records the electrical activity produced by your brain through sensors placed on the scalp."},
			line{true, "Is it safe?"},
			line{false, "Yes. EEG is non-invasive and only listens to signals your brain already produces."},
		),
		convo("chat-2", "Managing stress", now.Add(-26*time.Hour),
			line{true, "I feel stressed before exams."},
			line{false, "Short breathing exercises and regular breaks can lower stress before demanding tasks."},
		),
		convo("chat-3", "Improving focus", now.Add(-72*time.Hour),
			line{true, "How can I stay focused longer?"},
			line{false, "Try working in 25 minute blocks with short breaks in between to keep attention high."},
		),
	}
}

func seedTestResults(now time.Time) []domain.TestResultModel {
	at := func(hour, min int) time.Time {
		y, m, d := now.Date()
		return time.Date(y, m, d, hour, min, 0, 0, now.Location())
	}

	return []domain.TestResultModel{
		{
			ID:              "test-1",
			Label:           "Focused",
			Description:     "Strong beta waves detected. Great for cognitive tasks.",
			RecordedAt:      at(17, 20),
			AttentionScore:  87,
			CognitiveLead:   "Left Prefrontal Cortex",
			MentalFatigue:   22,
			RelaxationLevel: 45,
			Analysis:        "Your brain activity shows high beta wave activity, indicating deep focus and concentration. This pattern is ideal for complex problem-solving and analytical tasks.",
			Recommendations: database.StringArray{
				"Maintain this state for up to 90 minutes before taking a break",
				"Use this mental state for important cognitive tasks",
				"Consider simple breathing exercises to manage mental fatigue",
			},
			WaveData: database.IntArray{25, 30, 45, 60, 70, 75, 80, 85, 87, 85, 83, 80},
		},
		{
			ID:              "test-2",
			Label:           "Relaxed",
			Description:     "Alpha waves dominant. Ideal for creativity and learning.",
			RecordedAt:      at(15, 15),
			AttentionScore:  65,
			CognitiveLead:   "Right Temporal Lobe",
			MentalFatigue:   15,
			RelaxationLevel: 78,
			Analysis:        "Your brain is in a relaxed, yet alert state. This alpha-dominant pattern is optimal for creative thinking, learning new information, and stress reduction.",
			Recommendations: database.StringArray{
				"This is an excellent state for brainstorming or creative work",
				"Try activities requiring insight rather than analytical thinking",
				"Consider journaling to capture creative ideas",
			},
			WaveData: database.IntArray{40, 50, 62, 70, 75, 78, 76, 74, 72, 70, 68, 65},
		},
		{
			ID:              "test-3",
			Label:           "Distracted",
			Description:     "Theta waves with irregular patterns. Focus is fragmented.",
			RecordedAt:      at(13, 45),
			AttentionScore:  42,
			CognitiveLead:   "Multiple Regions",
			MentalFatigue:   65,
			RelaxationLevel: 38,
			Analysis:        "Your neural activity shows signs of distraction and task-switching. The brain is expending energy without optimal focus, which can lead to mental fatigue.",
			Recommendations: database.StringArray{
				"Take a 15-minute break to reset your attention",
				"Remove environmental distractions if possible",
				"Try a focused breathing exercise for 5 minutes",
			},
			WaveData: database.IntArray{60, 52, 45, 40, 42, 38, 35, 40, 45, 42, 38, 40},
		},
		{
			ID:              "test-4",
			Label:           "Focused",
			Description:     "Strong beta waves detected. Great for cognitive tasks.",
			RecordedAt:      at(11, 30),
			AttentionScore:  79,
			CognitiveLead:   "Left Prefrontal Cortex",
			MentalFatigue:   30,
			RelaxationLevel: 38,
			Analysis:        "Your brain activity shows good focus with some signs of mental fatigue beginning to develop. Still in productive range but approaching optimal break time.",
			Recommendations: database.StringArray{
				"Consider a short break in the next 15-20 minutes",
				"Try a brief mindfulness exercise to reset attention",
				"Reduce external distractions to maximize remaining focus",
			},
			WaveData: database.IntArray{18, 25, 38, 52, 65, 72, 77, 79, 78, 75, 70, 68},
		},
		{
			ID:              "test-5",
			Label:           "Flow State",
			Description:     "Optimal beta-alpha balance. Peak performance detected.",
			RecordedAt:      at(9, 45),
			AttentionScore:  94,
			CognitiveLead:   "Global Synchronization",
			MentalFatigue:   18,
			RelaxationLevel: 60,
			Analysis:        "Your brain shows the signature neural pattern of 'flow state' - a perfect balance of focus and creative thinking. This is associated with peak performance and enjoyment of tasks.",
			Recommendations: database.StringArray{
				"Continue your current activity while in this optimal state",
				"Note what conditions led to this flow state for future reference",
				"Minimize interruptions to maintain this rare optimal state",
			},
			WaveData: database.IntArray{45, 60, 72, 80, 85, 90, 94, 93, 92, 90, 88, 85},
		},
		{
			ID:              "test-6",
			Label:           "Meditative",
			Description:     "Strong alpha and theta presence. Deep relaxation detected.",
			RecordedAt:      at(8, 0),
			AttentionScore:  50,
			CognitiveLead:   "Default Mode Network",
			MentalFatigue:   10,
			RelaxationLevel: 92,
			Analysis:        "Your brain activity indicates a deep meditative state with excellent stress reduction and mental recovery. This pattern is associated with enhanced wellbeing and cognitive restoration.",
			Recommendations: database.StringArray{
				"This is an excellent state for mental recovery and stress reduction",
				"Schedule creative or complex cognitive tasks after this session",
				"Consider regular meditation to achieve this beneficial state",
			},
			WaveData: database.IntArray{60, 70, 80, 85, 90, 92, 93, 92, 90, 85, 80, 75},
		},
	}
}

// DefaultHome returns the static parts of the home dashboard.
// LiveData is filled in by the service from the live series.
func DefaultHome(now time.Time) domain.HomeData {
	const recDescription = "Your delta waves are below optimal. Try reducing screen time 1 hour before bed to improve deep sleep quality."
	return domain.HomeData{
		Analyses: domain.AnalysisData{
			Total: 100,
			Recent: []domain.BrainData{
				{Timestamp: now.AddDate(0, 0, -1).UTC().Format(time.RFC3339), Value: 75},
				{Timestamp: now.AddDate(0, 0, -2).UTC().Format(time.RFC3339), Value: 82},
			},
		},
		Reports: domain.ReportData{Total: 100},
		MentalState: domain.MentalStateData{
			State:      "Relaxed",
			Percentage: 85,
			Message:    "Your brain seems to be not tired today",
		},
		Recommendations: []domain.Recommendation{
			{ID: "1", Title: "Improve focus", Description: recDescription, Color: "#1AD598"},
			{ID: "2", Title: "Reduce stress", Description: recDescription, Color: "#FF6B6B"},
		},
	}
}

// DefaultLiveSeries is the initial live brain series.
func DefaultLiveSeries() []domain.BrainData {
	return []domain.BrainData{
		{Timestamp: "00:00", Value: 10},
		{Timestamp: "01:00", Value: 25},
		{Timestamp: "02:00", Value: 15},
		{Timestamp: "03:00", Value: 40},
		{Timestamp: "04:00", Value: 35},
		{Timestamp: "05:00", Value: 55},
	}
}
