package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dbertella/bbs/internal/database"
	"github.com/dbertella/bbs/internal/models"
	"github.com/rs/zerolog"
)

func newTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.New(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBookingCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db.DB(), zerolog.Nop())
	ctx := context.Background()

	notes := "summer stay"
	people := 4
	booking := &models.Booking{
		House:        models.HouseSerra,
		DateFrom:     time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		DateTo:       time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC),
		UserID:       "u1",
		Notes:        &notes,
		NumberPeople: &people,
	}

	if err := repo.Create(ctx, booking); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if booking.ID == "" {
		t.Fatal("create did not assign an id")
	}
	if booking.CreatedAt.IsZero() || booking.UpdatedAt.IsZero() {
		t.Fatal("create did not assign timestamps")
	}

	got, err := repo.GetByID(ctx, booking.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.House != models.HouseSerra || got.UserID != "u1" {
		t.Errorf("got = %+v", got)
	}
	if got.Notes == nil || *got.Notes != notes {
		t.Errorf("Notes = %v", got.Notes)
	}
	if got.NumberPeople == nil || *got.NumberPeople != people {
		t.Errorf("NumberPeople = %v", got.NumberPeople)
	}
	if !got.DateFrom.Equal(booking.DateFrom) || !got.DateTo.Equal(booking.DateTo) {
		t.Errorf("dates = %v .. %v", got.DateFrom, got.DateTo)
	}

	// Update rewrites optional columns; nil pointers become NULL.
	updated, err := repo.Update(ctx, booking.ID, &models.BookingUpdate{
		House:    models.HouseSolaro,
		DateFrom: booking.DateFrom,
		DateTo:   booking.DateTo,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.House != models.HouseSolaro {
		t.Errorf("House = %q", updated.House)
	}
	if updated.Notes != nil || updated.NumberPeople != nil {
		t.Errorf("optional fields not reset: notes=%v people=%v", updated.Notes, updated.NumberPeople)
	}
	if updated.UserID != "u1" {
		t.Errorf("UserID changed on update: %q", updated.UserID)
	}
	if !updated.CreatedAt.Equal(got.CreatedAt) {
		t.Errorf("CreatedAt changed on update")
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list len = %d, want 1", len(list))
	}

	if err := repo.Delete(ctx, booking.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, booking.ID); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("get after delete = %v, want ErrBookingNotFound", err)
	}
}

func TestBookingNotFoundErrors(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookingRepository(db.DB(), zerolog.Nop())
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("get = %v, want ErrBookingNotFound", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("delete = %v, want ErrBookingNotFound", err)
	}
	if _, err := repo.Update(ctx, "missing", &models.BookingUpdate{House: models.HouseSerra}); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("update = %v, want ErrBookingNotFound", err)
	}
}

func TestUserFamilyRepositories(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db.DB(), zerolog.Nop())
	families := NewFamilyRepository(db.DB(), zerolog.Nop())
	ctx := context.Background()

	if _, err := users.GetByEmail(ctx, "anna@example.com"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("get = %v, want ErrProfileNotFound", err)
	}

	if err := users.SetFamily(ctx, "anna@example.com", "f1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	profile, err := users.GetByEmail(ctx, "anna@example.com")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if profile.FamilyID == nil || *profile.FamilyID != "f1" {
		t.Errorf("FamilyID = %v", profile.FamilyID)
	}

	// Re-assigning replaces the association.
	if err := users.SetFamily(ctx, "anna@example.com", "f2"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	profile, _ = users.GetByEmail(ctx, "anna@example.com")
	if profile.FamilyID == nil || *profile.FamilyID != "f2" {
		t.Errorf("FamilyID after reassign = %v", profile.FamilyID)
	}

	if _, err := families.GetByID(ctx, "f1"); !errors.Is(err, ErrFamilyNotFound) {
		t.Errorf("get = %v, want ErrFamilyNotFound", err)
	}

	if _, err := db.DB().Exec(`INSERT INTO families (id, name, color) VALUES ('f1', 'Rossi', '#ff0000')`); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	family, err := families.GetByID(ctx, "f1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if family.Name != "Rossi" || family.Color != "#ff0000" {
		t.Errorf("family = %+v", family)
	}
}

func TestAccountDirectory(t *testing.T) {
	db := newTestDB(t)
	dir := NewAccountDirectory(db.DB(), zerolog.Nop())
	ctx := context.Background()

	if _, err := dir.User(ctx, "u1"); err == nil {
		t.Fatal("expected error for unknown uid")
	}

	if _, err := db.DB().Exec(`INSERT INTO accounts (uid, email, display_name) VALUES ('u1', 'anna@example.com', 'Anna')`); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	record, err := dir.User(ctx, "u1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if record.Email != "anna@example.com" || record.DisplayName != "Anna" {
		t.Errorf("record = %+v", record)
	}
}
