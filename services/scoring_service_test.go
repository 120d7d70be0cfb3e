package services

import (
	"errors"
	"testing"
	"time"

	"document-review-api/models"
)

func dims(pairs ...interface{}) []models.TemplateDimension {
	out := make([]models.TemplateDimension, 0, len(pairs)/3)
	for i := 0; i+2 < len(pairs); i += 3 {
		out = append(out, models.TemplateDimension{
			DimensionID: pairs[i].(int),
			Name:        pairs[i+1].(string),
			Weight:      pairs[i+2].(float64),
		})
	}
	return out
}

func TestComputeComposite(t *testing.T) {
	tests := []struct {
		name    string
		dims    []models.TemplateDimension
		scores  map[int]float64
		want    float64
		wantErr bool
	}{
		{
			name:   "weighted example",
			dims:   dims(1, "A", 0.6, 2, "B", 0.4),
			scores: map[int]float64{1: 80, 2: 90},
			want:   84.0,
		},
		{
			name:   "weights not summing to one are normalized",
			dims:   dims(1, "A", 2.0, 2, "B", 2.0),
			scores: map[int]float64{1: 70, 2: 90},
			want:   80.0,
		},
		{
			name:   "rounding to two decimals",
			dims:   dims(1, "A", 1.0, 2, "B", 1.0, 3, "C", 1.0),
			scores: map[int]float64{1: 70, 2: 80, 3: 85},
			want:   78.33,
		},
		{
			name:   "all-zero weights fall back to denominator one",
			dims:   dims(1, "A", 0.0, 2, "B", 0.0),
			scores: map[int]float64{1: 100, 2: 100},
			want:   0.0,
		},
		{
			name:    "missing dimension score",
			dims:    dims(1, "A", 0.5, 2, "B", 0.5),
			scores:  map[int]float64{1: 80},
			wantErr: true,
		},
		{
			name:    "score above range",
			dims:    dims(1, "A", 1.0),
			scores:  map[int]float64{1: 100.01},
			wantErr: true,
		},
		{
			name:    "score below range",
			dims:    dims(1, "A", 1.0),
			scores:  map[int]float64{1: -1},
			wantErr: true,
		},
		{
			name:    "unknown dimension id",
			dims:    dims(1, "A", 1.0),
			scores:  map[int]float64{1: 80, 99: 50},
			wantErr: true,
		},
		{
			name:    "no dimensions",
			dims:    nil,
			scores:  map[int]float64{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeComposite(tt.dims, tt.scores)
			if tt.wantErr {
				var verr *ValidationError
				if err == nil || !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("composite = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubmitReviewCreatesRowAndDetails(t *testing.T) {
	db := newTestDB(t)
	reviewer := seedUser(t, db, "rev1", models.RoleReviewer)
	teacher := seedUser(t, db, "tea1", models.RoleTeacher)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 0.6, "B": 0.4}, []string{"A", "B"})
	doc := seedDocument(t, db, teacher.UserID, tpl.TemplateID, nil)

	review, err := SubmitReview(ReviewSubmission{
		DocumentID: doc.DocumentID,
		ReviewerID: reviewer.UserID,
		Scores: map[int]float64{
			tpl.Dimensions[0].DimensionID: 80,
			tpl.Dimensions[1].DimensionID: 90,
		},
		Comment: "solid work",
	}, time.Now())
	if err != nil {
		t.Fatalf("SubmitReview failed: %v", err)
	}

	if review.Score != 84.0 {
		t.Errorf("composite = %v, want 84.0", review.Score)
	}
	if review.Status != models.ReviewStatusCompleted {
		t.Errorf("status = %q, want completed", review.Status)
	}

	var detailCount int64
	db.Model(&models.ReviewDetail{}).Where("review_id = ?", review.ReviewID).Count(&detailCount)
	if detailCount != 2 {
		t.Errorf("detail rows = %d, want 2", detailCount)
	}

	var fresh models.Document
	db.First(&fresh, doc.DocumentID)
	if fresh.Status != models.DocumentStatusReviewing {
		t.Errorf("document status = %q, want reviewing after first completed review", fresh.Status)
	}
}

func TestSubmitReviewResubmissionOverwrites(t *testing.T) {
	db := newTestDB(t)
	reviewer := seedUser(t, db, "rev1", models.RoleReviewer)
	teacher := seedUser(t, db, "tea1", models.RoleTeacher)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 0.6, "B": 0.4}, []string{"A", "B"})
	doc := seedDocument(t, db, teacher.UserID, tpl.TemplateID, nil)

	scores := map[int]float64{
		tpl.Dimensions[0].DimensionID: 80,
		tpl.Dimensions[1].DimensionID: 90,
	}
	sub := ReviewSubmission{DocumentID: doc.DocumentID, ReviewerID: reviewer.UserID, Scores: scores}

	first, err := SubmitReview(sub, time.Now())
	if err != nil {
		t.Fatalf("first submission failed: %v", err)
	}

	// Same scores again: same composite, same single row, no duplicate details.
	second, err := SubmitReview(sub, time.Now())
	if err != nil {
		t.Fatalf("resubmission failed: %v", err)
	}
	if second.ReviewID != first.ReviewID {
		t.Errorf("resubmission created a new review row: %d != %d", second.ReviewID, first.ReviewID)
	}
	if second.Score != first.Score {
		t.Errorf("idempotent resubmit changed composite: %v != %v", second.Score, first.Score)
	}

	var reviewCount, detailCount int64
	db.Model(&models.Review{}).Where("document_id = ?", doc.DocumentID).Count(&reviewCount)
	db.Model(&models.ReviewDetail{}).Where("review_id = ?", first.ReviewID).Count(&detailCount)
	if reviewCount != 1 {
		t.Errorf("review rows = %d, want 1", reviewCount)
	}
	if detailCount != 2 {
		t.Errorf("detail rows = %d, want 2", detailCount)
	}

	// Different scores: composite recomputed, last write wins.
	sub.Scores = map[int]float64{
		tpl.Dimensions[0].DimensionID: 50,
		tpl.Dimensions[1].DimensionID: 50,
	}
	third, err := SubmitReview(sub, time.Now())
	if err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if third.Score != 50.0 {
		t.Errorf("composite after overwrite = %v, want 50.0", third.Score)
	}
}

func TestSubmitReviewInvalidScoreLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	reviewer := seedUser(t, db, "rev1", models.RoleReviewer)
	teacher := seedUser(t, db, "tea1", models.RoleTeacher)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 0.6, "B": 0.4}, []string{"A", "B"})
	doc := seedDocument(t, db, teacher.UserID, tpl.TemplateID, nil)

	_, err := SubmitReview(ReviewSubmission{
		DocumentID: doc.DocumentID,
		ReviewerID: reviewer.UserID,
		Scores: map[int]float64{
			tpl.Dimensions[0].DimensionID: 80,
			tpl.Dimensions[1].DimensionID: 101,
		},
	}, time.Now())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	// Validation precedes every write: no orphaned Review row may exist.
	var reviewCount int64
	db.Model(&models.Review{}).Count(&reviewCount)
	if reviewCount != 0 {
		t.Errorf("review rows after failed submission = %d, want 0", reviewCount)
	}

	var fresh models.Document
	db.First(&fresh, doc.DocumentID)
	if fresh.Status != models.DocumentStatusPending {
		t.Errorf("document status = %q, want pending", fresh.Status)
	}
}

func TestSubmitReviewWithoutTemplate(t *testing.T) {
	db := newTestDB(t)
	reviewer := seedUser(t, db, "rev1", models.RoleReviewer)
	teacher := seedUser(t, db, "tea1", models.RoleTeacher)
	doc := seedDocument(t, db, teacher.UserID, 0, nil)

	_, err := SubmitReview(ReviewSubmission{
		DocumentID: doc.DocumentID,
		ReviewerID: reviewer.UserID,
		Scores:     map[int]float64{1: 80},
	}, time.Now())
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for unresolved template, got %v", err)
	}
}

func TestSubmitReviewOutsideWindow(t *testing.T) {
	db := newTestDB(t)
	reviewer := seedUser(t, db, "rev1", models.RoleReviewer)
	teacher := seedUser(t, db, "tea1", models.RoleTeacher)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 1.0}, []string{"A"})

	now := time.Now().UTC()
	ended := seedEvent(t, db, "ended", tpl.TemplateID,
		timePtr(now.Add(-48*time.Hour)), timePtr(now.Add(-24*time.Hour)), nil)
	future := seedEvent(t, db, "future", tpl.TemplateID,
		timePtr(now.Add(24*time.Hour)), timePtr(now.Add(48*time.Hour)), nil)

	scores := map[int]float64{tpl.Dimensions[0].DimensionID: 75}

	endedDoc := seedDocument(t, db, teacher.UserID, tpl.TemplateID, &ended.EventID)
	_, err := SubmitReview(ReviewSubmission{DocumentID: endedDoc.DocumentID, ReviewerID: reviewer.UserID, Scores: scores}, now)
	var werr *WindowClosedError
	if !errors.As(err, &werr) {
		t.Fatalf("expected WindowClosedError after end, got %v", err)
	}

	futureDoc := seedDocument(t, db, teacher.UserID, tpl.TemplateID, &future.EventID)
	_, err = SubmitReview(ReviewSubmission{DocumentID: futureDoc.DocumentID, ReviewerID: reviewer.UserID, Scores: scores}, now)
	if !errors.As(err, &werr) {
		t.Fatalf("expected WindowClosedError before start, got %v", err)
	}
}

func TestSubmitReviewMissingDocument(t *testing.T) {
	newTestDB(t)

	_, err := SubmitReview(ReviewSubmission{DocumentID: 42, ReviewerID: 7, Scores: map[int]float64{}}, time.Now())
	var nerr *NotFoundError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
