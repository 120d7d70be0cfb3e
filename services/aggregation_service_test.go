package services

import (
	"testing"
	"time"

	"document-review-api/models"
)

func TestDocumentScoresUndefinedWithoutCompletedReviews(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "tea1", models.RoleTeacher)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 1.0}, []string{"A"})
	doc := seedDocument(t, db, teacher.UserID, tpl.TemplateID, nil)

	scores, err := GetDocumentScores(doc.DocumentID)
	if err != nil {
		t.Fatalf("GetDocumentScores failed: %v", err)
	}
	if scores.Average != nil {
		t.Errorf("average = %v, want nil with zero completed reviews", *scores.Average)
	}
	if scores.ReviewCount != 0 {
		t.Errorf("review count = %d, want 0", scores.ReviewCount)
	}
	if len(scores.PerDimensionAverage) != 0 {
		t.Errorf("per-dimension averages = %v, want empty", scores.PerDimensionAverage)
	}
}

func TestDocumentScoresAcrossReviewers(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "tea1", models.RoleTeacher)
	rev1 := seedUser(t, db, "rev1", models.RoleReviewer)
	rev2 := seedUser(t, db, "rev2", models.RoleReviewer)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 0.6, "B": 0.4}, []string{"A", "B"})
	doc := seedDocument(t, db, teacher.UserID, tpl.TemplateID, nil)

	dimA := tpl.Dimensions[0].DimensionID
	dimB := tpl.Dimensions[1].DimensionID

	// rev1: composite 84.0, rev2: composite 60.0
	if _, err := SubmitReview(ReviewSubmission{
		DocumentID: doc.DocumentID, ReviewerID: rev1.UserID,
		Scores: map[int]float64{dimA: 80, dimB: 90},
	}, time.Now()); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := SubmitReview(ReviewSubmission{
		DocumentID: doc.DocumentID, ReviewerID: rev2.UserID,
		Scores: map[int]float64{dimA: 60, dimB: 60},
	}, time.Now()); err != nil {
		t.Fatalf("second review failed: %v", err)
	}

	scores, err := GetDocumentScores(doc.DocumentID)
	if err != nil {
		t.Fatalf("GetDocumentScores failed: %v", err)
	}
	if scores.Average == nil || *scores.Average != 72.0 {
		t.Fatalf("average = %v, want 72.0", scores.Average)
	}
	if scores.ReviewCount != 2 {
		t.Errorf("review count = %d, want 2", scores.ReviewCount)
	}

	// Per-dimension averages are plain means of the raw scores, not weighted.
	if got := scores.PerDimensionAverage[dimA]; got != 70.0 {
		t.Errorf("dimension A average = %v, want 70.0", got)
	}
	if got := scores.PerDimensionAverage[dimB]; got != 75.0 {
		t.Errorf("dimension B average = %v, want 75.0", got)
	}
}

func TestDocumentScoresIgnorePendingReviews(t *testing.T) {
	db := newTestDB(t)
	teacher := seedUser(t, db, "tea1", models.RoleTeacher)
	rev1 := seedUser(t, db, "rev1", models.RoleReviewer)
	rev2 := seedUser(t, db, "rev2", models.RoleReviewer)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 1.0}, []string{"A"})
	doc := seedDocument(t, db, teacher.UserID, tpl.TemplateID, nil)

	if _, err := SubmitReview(ReviewSubmission{
		DocumentID: doc.DocumentID, ReviewerID: rev1.UserID,
		Scores: map[int]float64{tpl.Dimensions[0].DimensionID: 90},
	}, time.Now()); err != nil {
		t.Fatalf("review failed: %v", err)
	}

	// A pending row (not reachable through SubmitReview today) must not
	// count toward the aggregates.
	now := time.Now().UTC()
	pending := models.Review{
		DocumentID: doc.DocumentID,
		ReviewerID: rev2.UserID,
		Score:      10,
		Status:     models.ReviewStatusPending,
		CreateAt:   &now,
		UpdateAt:   &now,
	}
	if err := db.Create(&pending).Error; err != nil {
		t.Fatalf("failed to seed pending review: %v", err)
	}

	scores, err := GetDocumentScores(doc.DocumentID)
	if err != nil {
		t.Fatalf("GetDocumentScores failed: %v", err)
	}
	if scores.Average == nil || *scores.Average != 90.0 {
		t.Fatalf("average = %v, want 90.0 from the single completed review", scores.Average)
	}
	if scores.ReviewCount != 1 {
		t.Errorf("review count = %d, want 1", scores.ReviewCount)
	}
}
