package services

import (
	"testing"

	"hub/models"
	"hub/utils/apperr"
)

func TestCreatorApplicationCounts(t *testing.T) {
	setupTestDB(t)
	task := mustCreateFlatTask(t, "alice", models.EvaluationText)
	mustSubmit(t, "bob", task.ID, nil)
	mustSubmit(t, "carol", task.ID, nil)

	counts, err := CreatorApplicationCounts("alice")
	if err != nil {
		t.Fatalf("failed to count applications: %v", err)
	}
	if len(counts) != 1 || counts[0].TaskID != task.ID || counts[0].Count != 2 {
		t.Fatalf("expected 2 new applications on the task, got %v", counts)
	}
	if counts[0].TaskTitle != task.Title {
		t.Errorf("expected title %q, got %q", task.Title, counts[0].TaskTitle)
	}

	// Viewing resets the count; later submissions count again
	if err := TouchCreatorView(task.ID, "alice"); err != nil {
		t.Fatalf("failed to touch view: %v", err)
	}
	counts, err = CreatorApplicationCounts("alice")
	if err != nil {
		t.Fatalf("failed to count applications: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected no new applications after viewing, got %v", counts)
	}

	mustSubmit(t, "dave", task.ID, nil)
	counts, err = CreatorApplicationCounts("alice")
	if err != nil {
		t.Fatalf("failed to count applications: %v", err)
	}
	if len(counts) != 1 || counts[0].Count != 1 {
		t.Fatalf("expected 1 new application after the watermark, got %v", counts)
	}
}

func TestCreatorApplicationCountsIncludeRoundSubmissions(t *testing.T) {
	setupTestDB(t)
	task := mustCreateStagedTask(t, "alice", models.EvaluationText, 2)
	mustSubmit(t, "bob", task.ID, &task.Rounds[0].ID)

	counts, err := CreatorApplicationCounts("alice")
	if err != nil {
		t.Fatalf("failed to count applications: %v", err)
	}
	if len(counts) != 1 || counts[0].Count != 1 {
		t.Fatalf("expected the round submission to count, got %v", counts)
	}
}

func TestApplicantReviewCounts(t *testing.T) {
	setupTestDB(t)
	task := mustCreateFlatTask(t, "alice", models.EvaluationBoth)
	app := mustSubmit(t, "bob", task.ID, nil)

	counts, err := ApplicantReviewCounts("bob")
	if err != nil {
		t.Fatalf("failed to count reviews: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected no review notifications before any review, got %v", counts)
	}

	if _, err := SaveReview(app.ID, "alice", strPtr("promising"), intPtr(6)); err != nil {
		t.Fatalf("failed to save review: %v", err)
	}
	counts, err = ApplicantReviewCounts("bob")
	if err != nil {
		t.Fatalf("failed to count reviews: %v", err)
	}
	if len(counts) != 1 || counts[0].TaskID != task.ID || counts[0].Count != 1 {
		t.Fatalf("expected 1 unseen review, got %v", counts)
	}

	if err := TouchReviewView(task.ID, "bob"); err != nil {
		t.Fatalf("failed to touch review view: %v", err)
	}
	counts, err = ApplicantReviewCounts("bob")
	if err != nil {
		t.Fatalf("failed to count reviews: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected no unseen reviews after viewing, got %v", counts)
	}

	// Overwriting the review moves its timestamp past the watermark
	if _, err := SaveReview(app.ID, "alice", strPtr("revised"), intPtr(8)); err != nil {
		t.Fatalf("failed to overwrite review: %v", err)
	}
	counts, err = ApplicantReviewCounts("bob")
	if err != nil {
		t.Fatalf("failed to count reviews: %v", err)
	}
	if len(counts) != 1 || counts[0].Count != 1 {
		t.Fatalf("expected the overwritten review to notify again, got %v", counts)
	}
}

func TestApplicantEliminationNotifications(t *testing.T) {
	setupTestDB(t)
	task := mustCreateFlatTask(t, "alice", models.EvaluationText)
	mustSubmit(t, "bob", task.ID, nil)

	if _, err := Eliminate(task.ID, "alice", []string{"bob"}); err != nil {
		t.Fatalf("failed to eliminate: %v", err)
	}

	counts, err := ApplicantEliminationNotifications("bob")
	if err != nil {
		t.Fatalf("failed to count eliminations: %v", err)
	}
	if len(counts) != 1 || counts[0].TaskID != task.ID {
		t.Fatalf("expected an elimination notification, got %v", counts)
	}

	if err := TouchEliminationView(task.ID, "bob"); err != nil {
		t.Fatalf("failed to touch elimination view: %v", err)
	}
	counts, err = ApplicantEliminationNotifications("bob")
	if err != nil {
		t.Fatalf("failed to count eliminations: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected no notifications after viewing, got %v", counts)
	}
}

func TestEliminationWithoutApplicationDoesNotNotify(t *testing.T) {
	setupTestDB(t)
	task := mustCreateFlatTask(t, "alice", models.EvaluationText)

	if _, err := Eliminate(task.ID, "alice", []string{"bob"}); err != nil {
		t.Fatalf("failed to eliminate: %v", err)
	}

	counts, err := ApplicantEliminationNotifications("bob")
	if err != nil {
		t.Fatalf("failed to count eliminations: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("elimination without an application should not notify, got %v", counts)
	}
}

func TestApplicantRoundActivationNotifications(t *testing.T) {
	setupTestDB(t)
	task := mustCreateStagedTask(t, "alice", models.EvaluationText, 3)
	mustSubmit(t, "bob", task.ID, &task.Rounds[0].ID)
	mustSubmit(t, "carol", task.ID, &task.Rounds[0].ID)

	// Nothing has been activated since creation yet
	counts, err := ApplicantRoundActivationNotifications("bob")
	if err != nil {
		t.Fatalf("failed to count activations: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected no activation notifications yet, got %v", counts)
	}

	if _, err := Eliminate(task.ID, "alice", []string{"carol"}); err != nil {
		t.Fatalf("failed to eliminate: %v", err)
	}

	expireRound(t, task.Rounds[0].ID)
	if _, err := ActivateNextRound(task.ID); err != nil {
		t.Fatalf("failed to advance: %v", err)
	}

	counts, err = ApplicantRoundActivationNotifications("bob")
	if err != nil {
		t.Fatalf("failed to count activations: %v", err)
	}
	if len(counts) != 1 || counts[0].TaskID != task.ID || counts[0].Count != 1 {
		t.Fatalf("expected 1 activation notification for bob, got %v", counts)
	}

	// Eliminated applicants are no longer notified about new rounds
	counts, err = ApplicantRoundActivationNotifications("carol")
	if err != nil {
		t.Fatalf("failed to count activations: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected no activation notifications for carol, got %v", counts)
	}

	if err := TouchRoundActivationView(task.ID, "bob"); err != nil {
		t.Fatalf("failed to touch activation view: %v", err)
	}
	counts, err = ApplicantRoundActivationNotifications("bob")
	if err != nil {
		t.Fatalf("failed to count activations: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected no notifications after viewing, got %v", counts)
	}
}

func TestRoundActivationReflectedInSummary(t *testing.T) {
	setupTestDB(t)
	task := mustCreateStagedTask(t, "alice", models.EvaluationText, 2)
	mustSubmit(t, "bob", task.ID, &task.Rounds[0].ID)

	summary, err := GetNotificationSummary("bob")
	if err != nil {
		t.Fatalf("failed to build summary: %v", err)
	}
	if len(summary.RoundActivations) != 0 {
		t.Fatalf("expected no activations before the advance, got %v", summary.RoundActivations)
	}

	expireRound(t, task.Rounds[0].ID)
	if _, err := ActivateNextRound(task.ID); err != nil {
		t.Fatalf("failed to advance: %v", err)
	}

	// The advance drops bob's cached summary, so the next poll sees the
	// new round immediately
	summary, err = GetNotificationSummary("bob")
	if err != nil {
		t.Fatalf("failed to rebuild summary: %v", err)
	}
	if len(summary.RoundActivations) != 1 || summary.RoundActivations[0].Count != 1 {
		t.Fatalf("expected 1 activation in the summary, got %v", summary.RoundActivations)
	}
	if summary.Badge != 1 {
		t.Errorf("expected badge 1, got %d", summary.Badge)
	}
}

func TestGetNotificationSummaryBadge(t *testing.T) {
	setupTestDB(t)

	// bob both creates a task and applies to someone else's, so the
	// summary mixes creator-side and applicant-side classes
	own := mustCreateFlatTask(t, "bob", models.EvaluationText)
	mustSubmit(t, "carol", own.ID, nil)
	mustSubmit(t, "dave", own.ID, nil)

	other := mustCreateFlatTask(t, "alice", models.EvaluationBoth)
	app := mustSubmit(t, "bob", other.ID, nil)
	if _, err := SaveReview(app.ID, "alice", strPtr("strong"), intPtr(9)); err != nil {
		t.Fatalf("failed to save review: %v", err)
	}
	if _, err := Eliminate(other.ID, "alice", []string{"bob"}); err != nil {
		t.Fatalf("failed to eliminate: %v", err)
	}

	summary, err := GetNotificationSummary("bob")
	if err != nil {
		t.Fatalf("failed to build summary: %v", err)
	}
	if len(summary.NewApplications) != 1 || summary.NewApplications[0].Count != 2 {
		t.Errorf("unexpected creator counts: %v", summary.NewApplications)
	}
	if len(summary.NewReviews) != 1 || summary.NewReviews[0].Count != 1 {
		t.Errorf("unexpected review counts: %v", summary.NewReviews)
	}
	if len(summary.Eliminations) != 1 {
		t.Errorf("unexpected elimination counts: %v", summary.Eliminations)
	}
	if summary.Badge != 4 {
		t.Errorf("expected badge 4, got %d", summary.Badge)
	}
}

func TestTouchWithoutApplications(t *testing.T) {
	setupTestDB(t)
	task := mustCreateFlatTask(t, "alice", models.EvaluationText)

	err := TouchReviewView(task.ID, "bob")
	wantKind(t, err, apperr.NotFound)
}
