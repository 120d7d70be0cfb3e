package services

import (
	"testing"

	"document-review-api/models"
)

func TestEventVisibilityEmptyWhitelistMeansAll(t *testing.T) {
	db := newTestDB(t)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 1.0}, []string{"A"})
	event := seedEvent(t, db, "open-event", tpl.TemplateID, nil, nil, nil)

	revA := seedUser(t, db, "revA", models.RoleReviewer)
	revB := seedUser(t, db, "revB", models.RoleReviewer)

	for _, user := range []models.User{revA, revB} {
		ok, err := CanSeeEvent(user, &event)
		if err != nil {
			t.Fatalf("CanSeeEvent failed: %v", err)
		}
		if !ok {
			t.Errorf("event without whitelist rows must be visible to %s", user.Username)
		}
	}

	// One whitelist row flips the event into whitelist mode.
	if err := AddEventReviewer(event.EventID, revA.UserID); err != nil {
		t.Fatalf("AddEventReviewer failed: %v", err)
	}

	okA, _ := CanSeeEvent(revA, &event)
	okB, _ := CanSeeEvent(revB, &event)
	if !okA {
		t.Error("whitelisted reviewer lost visibility")
	}
	if okB {
		t.Error("non-listed reviewer kept visibility after whitelist row was added")
	}

	// Removing the row reopens the event to everyone.
	if err := RemoveEventReviewer(event.EventID, revA.UserID); err != nil {
		t.Fatalf("RemoveEventReviewer failed: %v", err)
	}
	okB, _ = CanSeeEvent(revB, &event)
	if !okB {
		t.Error("event must reopen once the last whitelist row is removed")
	}
}

func TestEventVisibilityTeacherWhitelistIndependent(t *testing.T) {
	db := newTestDB(t)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 1.0}, []string{"A"})
	event := seedEvent(t, db, "event", tpl.TemplateID, nil, nil, nil)

	teacher := seedUser(t, db, "tea1", models.RoleTeacher)
	reviewer := seedUser(t, db, "rev1", models.RoleReviewer)

	// Whitelisting a teacher must not affect reviewer visibility.
	if err := AddEventTeacher(event.EventID, teacher.UserID); err != nil {
		t.Fatalf("AddEventTeacher failed: %v", err)
	}
	other := seedUser(t, db, "tea2", models.RoleTeacher)

	okOther, _ := CanSeeEvent(other, &event)
	if okOther {
		t.Error("non-listed teacher still sees whitelisted event")
	}
	okReviewer, _ := CanSeeEvent(reviewer, &event)
	if !okReviewer {
		t.Error("reviewer visibility must be independent of the teacher whitelist")
	}
}

func TestResolveVisibleEvents(t *testing.T) {
	db := newTestDB(t)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 1.0}, []string{"A"})
	seedEvent(t, db, "open", tpl.TemplateID, nil, nil, nil)
	restricted := seedEvent(t, db, "restricted", tpl.TemplateID, nil, nil, nil)
	inactive := seedEvent(t, db, "inactive", tpl.TemplateID, nil, nil, nil)
	if err := db.Model(&models.ReviewEvent{}).
		Where("event_id = ?", inactive.EventID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate event: %v", err)
	}

	admin := seedUser(t, db, "admin", models.RoleAdmin)
	revA := seedUser(t, db, "revA", models.RoleReviewer)
	revB := seedUser(t, db, "revB", models.RoleReviewer)
	if err := AddEventReviewer(restricted.EventID, revA.UserID); err != nil {
		t.Fatalf("AddEventReviewer failed: %v", err)
	}

	names := func(events []models.ReviewEvent) map[string]bool {
		out := map[string]bool{}
		for _, e := range events {
			out[e.Name] = true
		}
		return out
	}

	adminEvents, err := ResolveVisibleEvents(admin)
	if err != nil {
		t.Fatalf("ResolveVisibleEvents(admin) failed: %v", err)
	}
	if len(adminEvents) != 3 {
		t.Errorf("admin sees %d events, want all 3 including inactive", len(adminEvents))
	}

	aEvents, err := ResolveVisibleEvents(revA)
	if err != nil {
		t.Fatalf("ResolveVisibleEvents(revA) failed: %v", err)
	}
	got := names(aEvents)
	if !got["open"] || !got["restricted"] || got["inactive"] {
		t.Errorf("revA sees %v, want open+restricted only", got)
	}

	bEvents, err := ResolveVisibleEvents(revB)
	if err != nil {
		t.Fatalf("ResolveVisibleEvents(revB) failed: %v", err)
	}
	got = names(bEvents)
	if !got["open"] || got["restricted"] || got["inactive"] {
		t.Errorf("revB sees %v, want open only", got)
	}
}

func TestReviewerTeacherScoping(t *testing.T) {
	db := newTestDB(t)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 1.0}, []string{"A"})

	teacher1 := seedUser(t, db, "tea1", models.RoleTeacher)
	teacher2 := seedUser(t, db, "tea2", models.RoleTeacher)
	reviewer := seedUser(t, db, "rev1", models.RoleReviewer)

	doc1 := seedDocument(t, db, teacher1.UserID, tpl.TemplateID, nil)
	doc2 := seedDocument(t, db, teacher2.UserID, tpl.TemplateID, nil)

	// Zero assignments: no restriction.
	ok1, err := CanReviewerSeeDocument(reviewer, &doc1)
	if err != nil {
		t.Fatalf("CanReviewerSeeDocument failed: %v", err)
	}
	ok2, _ := CanReviewerSeeDocument(reviewer, &doc2)
	if !ok1 || !ok2 {
		t.Error("reviewer with zero assignments must see all teachers' documents")
	}

	// One assignment restricts the document set to that teacher.
	if err := AssignReviewerTeacher(reviewer.UserID, teacher1.UserID); err != nil {
		t.Fatalf("AssignReviewerTeacher failed: %v", err)
	}
	ok1, _ = CanReviewerSeeDocument(reviewer, &doc1)
	ok2, _ = CanReviewerSeeDocument(reviewer, &doc2)
	if !ok1 {
		t.Error("assigned teacher's document must stay visible")
	}
	if ok2 {
		t.Error("unassigned teacher's document must be hidden once scoping exists")
	}

	docs, err := ListDocumentsForUser(reviewer)
	if err != nil {
		t.Fatalf("ListDocumentsForUser failed: %v", err)
	}
	if len(docs) != 1 || docs[0].DocumentID != doc1.DocumentID {
		t.Errorf("scoped listing = %v, want only doc1", docs)
	}
}

func TestAdminBypassesVisibility(t *testing.T) {
	db := newTestDB(t)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 1.0}, []string{"A"})
	event := seedEvent(t, db, "event", tpl.TemplateID, nil, nil, nil)

	listed := seedUser(t, db, "rev1", models.RoleReviewer)
	if err := AddEventReviewer(event.EventID, listed.UserID); err != nil {
		t.Fatalf("AddEventReviewer failed: %v", err)
	}

	admin := seedUser(t, db, "admin", models.RoleAdmin)
	ok, err := CanSeeEvent(admin, &event)
	if err != nil {
		t.Fatalf("CanSeeEvent failed: %v", err)
	}
	if !ok {
		t.Error("admin must bypass whitelists")
	}
}
