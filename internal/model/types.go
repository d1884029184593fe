package model

// ContentType classifies a piece of learning content.
type ContentType string

const (
	ContentTypeText     ContentType = "text"
	ContentTypeVideo    ContentType = "video"
	ContentTypeQuiz     ContentType = "quiz"
	ContentTypeExercise ContentType = "exercise"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeText, ContentTypeVideo, ContentTypeQuiz, ContentTypeExercise:
		return true
	}
	return false
}

// ProgressStatus tracks a user's state on a learning path step.
type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

func (s ProgressStatus) Valid() bool {
	switch s {
	case ProgressNotStarted, ProgressInProgress, ProgressCompleted:
		return true
	}
	return false
}
