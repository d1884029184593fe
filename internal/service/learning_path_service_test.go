package service

import (
	"testing"

	"github.com/jossyfresh/EduAssist/internal/model"
	"github.com/jossyfresh/EduAssist/internal/repository"
	"github.com/jossyfresh/EduAssist/pkg/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPathService(t *testing.T) *LearningPathService {
	setupTestDB(t)
	return NewLearningPathService(
		repository.NewLearningPathRepository(db.DB),
		repository.NewProgressRepository(db.DB),
	)
}

func TestLearningPathService_Visibility(t *testing.T) {
	service := newPathService(t)

	private, err := service.Create("owner", LearningPathRequest{Title: "private path"})
	require.NoError(t, err)
	public, err := service.Create("owner", LearningPathRequest{Title: "public path", IsPublic: true})
	require.NoError(t, err)

	// The owner sees both; strangers only the public one.
	_, err = service.Get(private.ID, "owner")
	assert.NoError(t, err)
	_, err = service.Get(private.ID, "stranger")
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = service.Get(public.ID, "stranger")
	assert.NoError(t, err)

	_, err = service.Get("missing", "owner")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLearningPathService_StepsAndReorder(t *testing.T) {
	service := newPathService(t)

	path, err := service.Create("owner", LearningPathRequest{Title: "go course"})
	require.NoError(t, err)

	step1, err := service.CreateStep(path.ID, "owner", StepRequest{
		Title: "basics", StepOrder: 1, ContentType: model.ContentTypeText,
	})
	require.NoError(t, err)
	step2, err := service.CreateStep(path.ID, "owner", StepRequest{
		Title: "concurrency", StepOrder: 2, ContentType: model.ContentTypeVideo,
	})
	require.NoError(t, err)

	// Only the owner may add steps.
	_, err = service.CreateStep(path.ID, "stranger", StepRequest{
		Title: "hack", StepOrder: 3, ContentType: model.ContentTypeText,
	})
	assert.ErrorIs(t, err, ErrForbidden)

	// Invalid content type is rejected.
	_, err = service.CreateStep(path.ID, "owner", StepRequest{
		Title: "bad", StepOrder: 3, ContentType: model.ContentType("hologram"),
	})
	assert.ErrorIs(t, err, ErrInvalidContentType)

	require.NoError(t, service.ReorderSteps(path.ID, "owner", []string{step2.ID, step1.ID}))

	steps, err := service.ListSteps(path.ID, "owner")
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, step2.ID, steps[0].ID)
	assert.Equal(t, step1.ID, steps[1].ID)
}

func TestLearningPathService_ProgressLifecycle(t *testing.T) {
	service := newPathService(t)

	path, err := service.Create("owner", LearningPathRequest{Title: "p", IsPublic: true})
	require.NoError(t, err)
	step, err := service.CreateStep(path.ID, "owner", StepRequest{
		Title: "s1", StepOrder: 1, ContentType: model.ContentTypeText,
	})
	require.NoError(t, err)

	progress, err := service.UpsertProgress("student", ProgressRequest{
		LearningPathID: path.ID,
		StepID:         step.ID,
		Status:         model.ProgressInProgress,
	})
	require.NoError(t, err)
	assert.NotNil(t, progress.StartedAt)
	assert.Nil(t, progress.CompletedAt)

	progress, err = service.UpsertProgress("student", ProgressRequest{
		LearningPathID: path.ID,
		StepID:         step.ID,
		Status:         model.ProgressCompleted,
	})
	require.NoError(t, err)
	assert.NotNil(t, progress.CompletedAt)

	_, err = service.UpsertProgress("student", ProgressRequest{
		LearningPathID: path.ID,
		StepID:         step.ID,
		Status:         model.ProgressStatus("teleported"),
	})
	assert.ErrorIs(t, err, ErrInvalidProgressStatus)

	records, err := service.GetProgress("student", path.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLearningPathService_Summary(t *testing.T) {
	service := newPathService(t)

	path, err := service.Create("owner", LearningPathRequest{Title: "p", IsPublic: true})
	require.NoError(t, err)

	var stepIDs []string
	for i := 1; i <= 4; i++ {
		step, err := service.CreateStep(path.ID, "owner", StepRequest{
			Title: "step", StepOrder: i, ContentType: model.ContentTypeText,
		})
		require.NoError(t, err)
		stepIDs = append(stepIDs, step.ID)
	}

	for _, id := range stepIDs[:2] {
		_, err := service.UpsertProgress("student", ProgressRequest{
			LearningPathID: path.ID, StepID: id, Status: model.ProgressCompleted,
		})
		require.NoError(t, err)
	}
	_, err = service.UpsertProgress("student", ProgressRequest{
		LearningPathID: path.ID, StepID: stepIDs[2], Status: model.ProgressInProgress,
	})
	require.NoError(t, err)

	summary, err := service.Summary("student", path.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, summary.TotalSteps)
	assert.Equal(t, 2, summary.Completed)
	assert.Equal(t, 1, summary.InProgress)
	assert.InDelta(t, 50.0, summary.PercentDone, 0.001)
}
