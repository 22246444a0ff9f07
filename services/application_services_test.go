package services

import (
	"testing"

	"hub/models"
	"hub/utils/apperr"
)

func TestSubmitFlatTask(t *testing.T) {
	setupTestDB(t)
	task := mustCreateFlatTask(t, "alice", models.EvaluationText)

	app := mustSubmit(t, "bob", task.ID, nil)
	if app.TaskID == nil || *app.TaskID != task.ID {
		t.Errorf("application not bound to task: %v", app.TaskID)
	}
	if app.RoundID != nil {
		t.Error("flat application carries a round reference")
	}
	if app.SubmittedAt.IsZero() {
		t.Error("submission timestamp not stamped")
	}

	// Same applicant, same task: refused
	_, err := Submit("bob", "bob-id", task.ID, nil, "ref2", "again.pdf")
	wantKind(t, err, apperr.DuplicateApplication)

	// A different applicant is fine
	mustSubmit(t, "carol", task.ID, nil)
}

func TestSubmitFlatTaskDeadlinePassed(t *testing.T) {
	setupTestDB(t)
	task := mustCreateFlatTask(t, "alice", models.EvaluationText)
	expireFlatDeadline(t, task.ID)

	_, err := Submit("bob", "bob-id", task.ID, nil, "ref", "late.pdf")
	wantKind(t, err, apperr.Validation)
}

func TestSubmitTaskNotFound(t *testing.T) {
	setupTestDB(t)
	_, err := Submit("bob", "bob-id", "00000000-0000-0000-0000-000000000000", nil, "ref", "f.pdf")
	wantKind(t, err, apperr.NotFound)
}

func TestSubmitStagedTaskTargeting(t *testing.T) {
	setupTestDB(t)
	task := mustCreateStagedTask(t, "alice", models.EvaluationText, 2)
	first := task.Rounds[0].ID
	second := task.Rounds[1].ID

	// A round must be named on a staged task
	_, err := Submit("bob", "bob-id", task.ID, nil, "ref", "f.pdf")
	wantKind(t, err, apperr.Validation)

	// The round must belong to this task
	unknown := "00000000-0000-0000-0000-000000000000"
	_, err = Submit("bob", "bob-id", task.ID, &unknown, "ref", "f.pdf")
	wantKind(t, err, apperr.NotFound)

	// Only the active round accepts submissions
	_, err = Submit("bob", "bob-id", task.ID, &second, "ref", "f.pdf")
	wantKind(t, err, apperr.RoundNotActive)

	mustSubmit(t, "bob", task.ID, &first)

	_, err = Submit("bob", "bob-id", task.ID, &first, "ref2", "again.pdf")
	wantKind(t, err, apperr.DuplicateApplication)
}

func TestSubmitAcrossRoundAdvance(t *testing.T) {
	setupTestDB(t)
	task := mustCreateStagedTask(t, "alice", models.EvaluationText, 2)
	first := task.Rounds[0].ID
	second := task.Rounds[1].ID

	mustSubmit(t, "bob", task.ID, &first)

	expireRound(t, first)
	if _, err := ActivateNextRound(task.ID); err != nil {
		t.Fatalf("failed to advance: %v", err)
	}

	// The new active round accepts a fresh application from the same
	// applicant; the closed round no longer accepts anything
	mustSubmit(t, "bob", task.ID, &second)

	_, err := Submit("carol", "carol-id", task.ID, &first, "ref", "f.pdf")
	wantKind(t, err, apperr.RoundNotActive)
}

func TestSubmitEliminatedApplicant(t *testing.T) {
	setupTestDB(t)
	task := mustCreateStagedTask(t, "alice", models.EvaluationText, 2)
	first := task.Rounds[0].ID
	second := task.Rounds[1].ID

	mustSubmit(t, "bob", task.ID, &first)
	if _, err := Eliminate(task.ID, "alice", []string{"bob"}); err != nil {
		t.Fatalf("failed to eliminate: %v", err)
	}

	expireRound(t, first)
	if _, err := ActivateNextRound(task.ID); err != nil {
		t.Fatalf("failed to advance: %v", err)
	}

	// Elimination is task-wide: the new round is closed to bob too
	_, err := Submit("bob", "bob-id", task.ID, &second, "ref", "f.pdf")
	wantKind(t, err, apperr.Eliminated)

	// Other applicants are unaffected
	mustSubmit(t, "carol", task.ID, &second)
}

func TestListApplicationsByTaskSpansRounds(t *testing.T) {
	setupTestDB(t)
	task := mustCreateStagedTask(t, "alice", models.EvaluationText, 2)
	first := task.Rounds[0].ID
	second := task.Rounds[1].ID

	mustSubmit(t, "bob", task.ID, &first)
	expireRound(t, first)
	if _, err := ActivateNextRound(task.ID); err != nil {
		t.Fatalf("failed to advance: %v", err)
	}
	mustSubmit(t, "bob", task.ID, &second)
	mustSubmit(t, "carol", task.ID, &second)

	apps, err := ListApplicationsByTask(task.ID)
	if err != nil {
		t.Fatalf("failed to list applications: %v", err)
	}
	if len(apps) != 3 {
		t.Fatalf("expected 3 applications across rounds, got %d", len(apps))
	}

	byRound, err := ListApplicationsByRound(second)
	if err != nil {
		t.Fatalf("failed to list round applications: %v", err)
	}
	if len(byRound) != 2 {
		t.Fatalf("expected 2 applications on the second round, got %d", len(byRound))
	}
}

func TestListApplicationsByApplicant(t *testing.T) {
	setupTestDB(t)
	flat := mustCreateFlatTask(t, "alice", models.EvaluationText)
	staged := mustCreateStagedTask(t, "alice", models.EvaluationText, 2)

	mustSubmit(t, "bob", flat.ID, nil)
	mustSubmit(t, "bob", staged.ID, &staged.Rounds[0].ID)
	mustSubmit(t, "carol", flat.ID, nil)

	apps, err := ListApplicationsByApplicant("bob")
	if err != nil {
		t.Fatalf("failed to list applications: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications for bob, got %d", len(apps))
	}
}

func TestAuthorizeDownload(t *testing.T) {
	setupTestDB(t)
	task := mustCreateFlatTask(t, "alice", models.EvaluationText)
	app := mustSubmit(t, "bob", task.ID, nil)

	for _, username := range []string{"bob", "alice"} {
		if _, err := AuthorizeDownload(app.ID, username); err != nil {
			t.Errorf("%s should be allowed to download: %v", username, err)
		}
	}

	_, err := AuthorizeDownload(app.ID, "mallory")
	wantKind(t, err, apperr.Authorization)
}

func TestOwningTaskResolvesThroughRound(t *testing.T) {
	setupTestDB(t)
	task := mustCreateStagedTask(t, "alice", models.EvaluationText, 2)
	app := mustSubmit(t, "bob", task.ID, &task.Rounds[0].ID)

	owner, err := OwningTask(app)
	if err != nil {
		t.Fatalf("failed to resolve owning task: %v", err)
	}
	if owner.ID != task.ID {
		t.Errorf("expected task %s, got %s", task.ID, owner.ID)
	}
}
