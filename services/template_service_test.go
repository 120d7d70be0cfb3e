package services

import (
	"errors"
	"testing"

	"document-review-api/models"
)

func TestCreateTemplate(t *testing.T) {
	newTestDB(t)

	tpl, err := CreateTemplate("rubric", []DimensionInput{
		{Name: "Clarity", Weight: 0.5},
		{Name: "Depth", Weight: 0.3},
		{Name: "Style", Weight: 0.2},
	})
	if err != nil {
		t.Fatalf("CreateTemplate failed: %v", err)
	}
	if len(tpl.Dimensions) != 3 {
		t.Fatalf("dimensions = %d, want 3", len(tpl.Dimensions))
	}
	for i, dim := range tpl.Dimensions {
		if dim.OrderIndex != i {
			t.Errorf("dimension %q order_index = %d, want %d", dim.Name, dim.OrderIndex, i)
		}
	}

	// Creation does not require weights summing to 1.
	if _, err := CreateTemplate("loose", []DimensionInput{{Name: "Only", Weight: 5}}); err != nil {
		t.Errorf("creation with loose weights failed: %v", err)
	}

	var conflict *ConflictError
	if _, err := CreateTemplate("rubric", []DimensionInput{{Name: "X", Weight: 1}}); !errors.As(err, &conflict) {
		t.Errorf("duplicate name: expected ConflictError, got %v", err)
	}

	var verr *ValidationError
	if _, err := CreateTemplate("bad", nil); !errors.As(err, &verr) {
		t.Errorf("no dimensions: expected ValidationError, got %v", err)
	}
	if _, err := CreateTemplate("bad", []DimensionInput{{Name: "X", Weight: -1}}); !errors.As(err, &verr) {
		t.Errorf("negative weight: expected ValidationError, got %v", err)
	}
}

func TestUpdateTemplateDimensionsEnforcesWeightSum(t *testing.T) {
	db := newTestDB(t)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 0.5, "B": 0.5}, []string{"A", "B"})

	var verr *ValidationError
	err := UpdateTemplateDimensions(tpl.TemplateID, []DimensionInput{
		{Name: "A", Weight: 0.5},
		{Name: "B", Weight: 0.6},
	})
	if !errors.As(err, &verr) {
		t.Fatalf("sum 1.1: expected ValidationError, got %v", err)
	}

	// Within the ±0.01 tolerance.
	err = UpdateTemplateDimensions(tpl.TemplateID, []DimensionInput{
		{Name: "A", Weight: 0.6},
		{Name: "B", Weight: 0.405},
	})
	if err != nil {
		t.Fatalf("sum 1.005 within tolerance failed: %v", err)
	}

	dims, err := TemplateDimensionsOrdered(tpl.TemplateID)
	if err != nil {
		t.Fatalf("TemplateDimensionsOrdered failed: %v", err)
	}
	if len(dims) != 2 || dims[0].Name != "A" || dims[0].Weight != 0.6 {
		t.Errorf("dimensions after batch edit = %+v", dims)
	}
}

func TestTemplateLockedWhileActiveEventReferencesIt(t *testing.T) {
	db := newTestDB(t)
	tpl := seedTemplate(t, db, "rubric", map[string]float64{"A": 1.0}, []string{"A"})
	event := seedEvent(t, db, "event", tpl.TemplateID, nil, nil, nil)

	edit := []DimensionInput{{Name: "A", Weight: 1.0}}

	var conflict *ConflictError
	if err := UpdateTemplateDimensions(tpl.TemplateID, edit); !errors.As(err, &conflict) {
		t.Fatalf("locked template: expected ConflictError, got %v", err)
	}

	// Deactivating the event releases the lock.
	if err := SetEventActive(event.EventID, false); err != nil {
		t.Fatalf("SetEventActive failed: %v", err)
	}
	if err := UpdateTemplateDimensions(tpl.TemplateID, edit); err != nil {
		t.Fatalf("unlocked template edit failed: %v", err)
	}
}

func TestDeleteTemplateRejectsReferenced(t *testing.T) {
	db := newTestDB(t)
	used := seedTemplate(t, db, "used", map[string]float64{"A": 1.0}, []string{"A"})
	seedEvent(t, db, "event", used.TemplateID, nil, nil, nil)

	var conflict *ConflictError
	if err := DeleteTemplate(used.TemplateID); !errors.As(err, &conflict) {
		t.Fatalf("referenced template: expected ConflictError, got %v", err)
	}

	unused := seedTemplate(t, db, "unused", map[string]float64{"A": 1.0}, []string{"A"})
	if err := DeleteTemplate(unused.TemplateID); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}

	var dimCount int64
	db.Model(&models.TemplateDimension{}).Where("template_id = ?", unused.TemplateID).Count(&dimCount)
	if dimCount != 0 {
		t.Errorf("dimension rows after delete = %d, want 0 (cascade)", dimCount)
	}
}
