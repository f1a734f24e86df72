package domain

const (
	EventNameCourseCreated = "course.created"
	EventNameExamCreated   = "exam.created"
	EventNameUserLoggedIn  = "user.logged_in"
)

type EventCourseCreated struct {
	Course Record
}

func (EventCourseCreated) Name() string { return EventNameCourseCreated }

type EventExamCreated struct {
	Exam Record
}

func (EventExamCreated) Name() string { return EventNameExamCreated }

type EventUserLoggedIn struct {
	User User
}

func (EventUserLoggedIn) Name() string { return EventNameUserLoggedIn }
