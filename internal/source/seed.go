package source

import (
	"github.com/shopspring/decimal"

	"github.com/bioprephq/bioprep/internal/domain"
)

// Builtin returns a Static source preloaded with the demo catalog, used
// when no file or URL source is configured.
func Builtin() *Static {
	return NewStatic(map[string][]domain.Record{
		ResourceCourses: builtinCourses(),
		ResourceExams:   builtinExams(),
	})
}

func builtinCourses() []domain.Record {
	return []domain.Record{
		{
			ID:          "hsc",
			Title:       "HSC Biology Complete Course",
			Description: "Full HSC syllabus coverage with theory, practicals and board-style model tests",
			Tags:        []string{"HSC", "Board Prep"},
			Level:       "Intermediate",
			Rating:      4.8,
			Price:       decimal.NewFromFloat(59.99),
			Duration:    "12 Months",
			Students:    "3200+ students",
			Icon:        "🎓",
			Date:        "2024-09-01",
		},
		{
			ID:          "varsity",
			Title:       "Varsity Admission Biology",
			Description: "University admission preparation covering every high-yield biology chapter",
			Tags:        []string{"Admission", "Varsity"},
			Level:       "Advanced",
			Rating:      4.7,
			Price:       decimal.NewFromFloat(49.99),
			Duration:    "6 Months",
			Students:    "2100+ students",
			Icon:        "🏛️",
			Date:        "2024-08-15",
		},
		{
			ID:          "crash",
			Title:       "Biology Crash Course",
			Description: "Rapid revision of the complete syllabus in eight focused weeks",
			Tags:        []string{"Revision", "Fast Track"},
			Level:       "Beginner",
			Rating:      4.5,
			Price:       decimal.NewFromFloat(29.99),
			Duration:    "8 Weeks",
			Students:    "1800+ students",
			Icon:        "⚡",
			Date:        "2024-10-01",
		},
		{
			ID:            "medical",
			Title:         "Medical Entrance Biology",
			Description:   "Intensive preparation for medical entrance exams with daily problem sets",
			Tags:          []string{"Medical", "NEET"},
			Level:         "Expert",
			Rating:        4.9,
			Price:         decimal.NewFromFloat(79.99),
			OriginalPrice: decimal.NewFromFloat(99.99),
			Duration:      "10 Months",
			Students:      "2700+ students",
			Icon:          "⚕️",
			Date:          "2024-07-20",
		},
		{
			ID:          "olympiad",
			Title:       "Biology Olympiad Training",
			Description: "Champion-level training for national and international biology olympiads",
			Tags:        []string{"Olympiad", "Competition"},
			Level:       "Champion",
			Rating:      4.6,
			Price:       decimal.NewFromFloat(69.99),
			Duration:    "9 Months",
			Students:    "600+ students",
			Icon:        "🏅",
			Date:        "2024-06-05",
		},
	}
}

func builtinExams() []domain.Record {
	return []domain.Record{
		{
			ID:              "hsc-2024",
			Title:           "HSC Biology Final Exam",
			Description:     "Complete syllabus final examination with practical and theory sections",
			Date:            "2024-11-15",
			Time:            "10:00 AM - 1:00 PM",
			Duration:        "3 Hours",
			TotalQuestions:  100,
			TotalMarks:      decimal.NewFromInt(100),
			Enrolled:        1250,
			MaxParticipants: 1500,
			Difficulty:      domain.DifficultyIntermediate,
			Type:            "Board",
			Status:          "upcoming",
			Icon:            "🎓",
		},
		{
			ID:              "medical-neet",
			Title:           "NEET 2024 Mock Test",
			Description:     "Full-length NEET preparation test with previous year question patterns",
			Date:            "2024-10-20",
			Time:            "9:00 AM - 12:00 PM",
			Duration:        "3 Hours",
			TotalQuestions:  180,
			TotalMarks:      decimal.NewFromInt(720),
			Enrolled:        850,
			MaxParticipants: 1000,
			Difficulty:      domain.DifficultyAdvanced,
			Type:            "Medical",
			Status:          "upcoming",
			Icon:            "⚕️",
		},
		{
			ID:              "varsity-admission",
			Title:           "Varsity Admission Test",
			Description:     "Comprehensive biology test for university admission preparation",
			Date:            "2024-09-30",
			Time:            "2:00 PM - 5:00 PM",
			Duration:        "3 Hours",
			TotalQuestions:  80,
			TotalMarks:      decimal.NewFromInt(80),
			Enrolled:        2100,
			MaxParticipants: 2500,
			Difficulty:      domain.DifficultyIntermediate,
			Type:            "Admission",
			Status:          "upcoming",
			Icon:            "🏛️",
		},
		{
			ID:              "olympiad-prelim",
			Title:           "Biology Olympiad Preliminary",
			Description:     "National level biology olympiad preliminary round",
			Date:            "2024-08-25",
			Time:            "11:00 AM - 2:00 PM",
			Duration:        "3 Hours",
			TotalQuestions:  120,
			TotalMarks:      decimal.NewFromInt(120),
			Enrolled:        950,
			MaxParticipants: 1200,
			Difficulty:      domain.DifficultyExpert,
			Type:            "Olympiad",
			Status:          "upcoming",
			Icon:            "🏅",
		},
		{
			ID:              "crash-course-final",
			Title:           "Crash Course Final Assessment",
			Description:     "Final assessment for biology crash course participants",
			Date:            "2024-07-15",
			Time:            "3:00 PM - 5:00 PM",
			Duration:        "2 Hours",
			TotalQuestions:  60,
			TotalMarks:      decimal.NewFromInt(60),
			Enrolled:        1800,
			MaxParticipants: 2000,
			Difficulty:      domain.DifficultyBeginner,
			Type:            "Assessment",
			Status:          "completed",
			Icon:            "⚡",
		},
		{
			ID:              "mid-term-2024",
			Title:           "Mid Term Biology Exam",
			Description:     "Half-yearly biology examination for regular students",
			Date:            "2024-06-10",
			Time:            "9:30 AM - 12:30 PM",
			Duration:        "3 Hours",
			TotalQuestions:  90,
			TotalMarks:      decimal.NewFromInt(90),
			Enrolled:        3200,
			MaxParticipants: 3500,
			Difficulty:      domain.DifficultyIntermediate,
			Type:            "Academic",
			Status:          "completed",
			Icon:            "📚",
		},
		{
			ID:              "chapter-test-cell",
			Title:           "Cell Biology Chapter Test",
			Description:     "Focused test on cell biology chapter for HSC students",
			Date:            "2024-10-05",
			Time:            "4:00 PM - 5:30 PM",
			Duration:        "1.5 Hours",
			TotalQuestions:  50,
			TotalMarks:      decimal.NewFromInt(50),
			Enrolled:        750,
			MaxParticipants: 1000,
			Difficulty:      domain.DifficultyIntermediate,
			Type:            "Chapter",
			Status:          "upcoming",
			Icon:            "🧬",
		},
		{
			ID:              "genetics-quiz",
			Title:           "Genetics Weekly Quiz",
			Description:     "Weekly quiz competition on genetics for medical students",
			Date:            "2024-10-12",
			Time:            "6:00 PM - 7:00 PM",
			Duration:        "1 Hour",
			TotalQuestions:  30,
			TotalMarks:      decimal.NewFromInt(30),
			Enrolled:        420,
			MaxParticipants: 500,
			Difficulty:      domain.DifficultyAdvanced,
			Type:            "Quiz",
			Status:          "upcoming",
			Icon:            "🧪",
		},
	}
}
