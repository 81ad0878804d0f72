package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func trainerParams() CreateParams {
	return CreateParams{
		Role:        RoleTrainer,
		Firstname:   "Uma",
		Lastname:    "Rao",
		Email:       "  UMA@Example.COM ",
		PhoneNumber: " +919876543210 ",
		City:        "Bengaluru",
		Latitude:    ptr(12.9716),
		Longitude:   ptr(77.5946),
		Marketing:   true,
		Terms:       true,
	}
}

func TestMockCreateNormalizesInput(t *testing.T) {
	m := NewMockProfileService()

	p, err := m.Create(context.Background(), "user-1", trainerParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Email != "uma@example.com" {
		t.Errorf("expected normalized email, got %s", p.Email)
	}
	if p.PhoneNumber != "+919876543210" {
		t.Errorf("expected trimmed phone, got %q", p.PhoneNumber)
	}
	if p.Role != RoleTrainer || p.City != "Bengaluru" {
		t.Errorf("unexpected profile %+v", p)
	}
	if p.Latitude == nil || *p.Latitude != 12.9716 {
		t.Error("expected latitude preserved")
	}
}

func TestMockCreateRejectsInvalidRole(t *testing.T) {
	m := NewMockProfileService()
	params := trainerParams()
	params.Role = "admin"

	if _, err := m.Create(context.Background(), "user-1", params); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestMockCreateDuplicate(t *testing.T) {
	m := NewMockProfileService()
	m.Create(context.Background(), "user-1", trainerParams())

	if _, err := m.Create(context.Background(), "user-1", trainerParams()); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestMockGetNotFound(t *testing.T) {
	m := NewMockProfileService()

	if _, err := m.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMockUpdatePartialFields(t *testing.T) {
	m := NewMockProfileService()
	m.Create(context.Background(), "user-1", trainerParams())

	city := "Mumbai"
	lat := 19.076
	p, err := m.Update(context.Background(), "user-1", UpdateParams{City: &city, Latitude: &lat})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.City != "Mumbai" || *p.Latitude != 19.076 {
		t.Errorf("unexpected update %+v", p)
	}
	if p.Firstname != "Uma" {
		t.Error("untouched fields must survive update")
	}
	if p.Role != RoleTrainer {
		t.Error("role must not change on update")
	}
}

func TestMockDelete(t *testing.T) {
	m := NewMockProfileService()
	m.Create(context.Background(), "user-1", trainerParams())

	if err := m.Delete(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Delete(context.Background(), "user-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMockConcurrentAccess(t *testing.T) {
	m := NewMockProfileService()
	m.Create(context.Background(), "user-1", trainerParams())

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Get(context.Background(), "user-1")
			city := "Pune"
			_, _ = m.Update(context.Background(), "user-1", UpdateParams{City: &city})
		}()
	}
	wg.Wait()

	p, err := m.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.City != "Pune" {
		t.Errorf("expected final city Pune, got %s", p.City)
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleUser, RoleTrainer, RoleInstitute} {
		if !ValidRole(role) {
			t.Errorf("expected %s to be valid", role)
		}
	}
	if ValidRole("admin") || ValidRole("") {
		t.Error("expected unknown roles to be invalid")
	}
}
