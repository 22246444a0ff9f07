package services

import (
	"fmt"
	"testing"
	"time"

	"hub/database"
	"hub/models"
	"hub/utils/apperr"
	"hub/utils/dates"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int

// setupTestDB points the service layer at a fresh in-memory database.
// Each test gets its own named memory database so connections from the
// pool all see the same schema.
func setupTestDB(t *testing.T) {
	t.Helper()
	testDBSeq++
	dsn := fmt.Sprintf("file:hubtest%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	database.DB = db
}

// dateFromNow returns today shifted by the given number of days
func dateFromNow(days int) string {
	return time.Now().AddDate(0, 0, days).Format(dates.Layout)
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	if !apperr.IsKind(err, kind) {
		t.Fatalf("expected %s error, got: %v", kind, err)
	}
}

// mustCreateFlatTask creates a flat task with a deadline a week out
func mustCreateFlatTask(t *testing.T, creator, mode string) *models.Task {
	t.Helper()
	task, err := CreateTask(TaskSpec{
		Title:               "Logo contest",
		Description:         "Design a logo",
		Creator:             creator,
		EvaluationMode:      mode,
		ApplicationDeadline: strPtr(dateFromNow(7)),
	})
	if err != nil {
		t.Fatalf("failed to create flat task: %v", err)
	}
	return task
}

// mustCreateStagedTask creates a staged task with the given number of
// rounds, deadlines one day apart starting tomorrow
func mustCreateStagedTask(t *testing.T, creator, mode string, roundCount int) *models.Task {
	t.Helper()
	specs := make([]RoundSpec, 0, roundCount)
	for i := 0; i < roundCount; i++ {
		specs = append(specs, RoundSpec{
			Description: fmt.Sprintf("Round %d", i+1),
			Deadline:    dateFromNow(i + 1),
		})
	}
	task, err := CreateTask(TaskSpec{
		Title:          "Selection pipeline",
		Description:    "Multi round selection",
		Creator:        creator,
		EvaluationMode: mode,
		Rounds:         specs,
	})
	if err != nil {
		t.Fatalf("failed to create staged task: %v", err)
	}
	return task
}

// expireRound rewrites a round's deadline to the past so the task can
// advance without waiting for the clock
func expireRound(t *testing.T, roundID string) {
	t.Helper()
	err := database.DB.Model(&models.Round{}).Where("id = ?", roundID).
		Update("deadline", dateFromNow(-1)).Error
	if err != nil {
		t.Fatalf("failed to expire round: %v", err)
	}
}

// expireFlatDeadline rewrites a flat task's deadline to the past
func expireFlatDeadline(t *testing.T, taskID string) {
	t.Helper()
	err := database.DB.Model(&models.Task{}).Where("id = ?", taskID).
		Update("application_deadline", dateFromNow(-1)).Error
	if err != nil {
		t.Fatalf("failed to expire deadline: %v", err)
	}
}

// mustSubmit records an application and fails the test on any error
func mustSubmit(t *testing.T, applicant, taskID string, roundID *string) *models.Application {
	t.Helper()
	app, err := Submit(applicant, applicant+"-id", taskID, roundID, "ref-"+applicant, applicant+".pdf")
	if err != nil {
		t.Fatalf("failed to submit application: %v", err)
	}
	return app
}
