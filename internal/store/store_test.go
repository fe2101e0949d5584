package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "cafe-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}

	return db, cleanup
}

func createTestUser(t *testing.T, q *Queries, username string) User {
	t.Helper()

	now := time.Now()
	user, err := q.CreateUser(context.Background(), CreateUserParams{
		Username:    username,
		Email:       username + "@example.com",
		FirstName:   "Test",
		LastName:    "User",
		Description: "hello",
		ImageUrl:    DefaultUserImageURL,
		Password:    "hashed-password",
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func TestMigrate_SeedsCities(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	cities, err := New(db).ListCities(context.Background())
	if err != nil {
		t.Fatalf("ListCities: %v", err)
	}
	if len(cities) != 3 {
		t.Fatalf("len(cities) = %d, want 3", len(cities))
	}
	// ordered by name
	if cities[0].Name != "Berkeley" || cities[2].Name != "San Francisco" {
		t.Errorf("unexpected order: %+v", cities)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	user := createTestUser(t, New(db), "ana")

	if user.ID == 0 {
		t.Error("user.ID should not be 0")
	}
	if user.Admin {
		t.Error("user.Admin should default to false")
	}
	if user.FullName() != "Test User" {
		t.Errorf("FullName() = %q, want %q", user.FullName(), "Test User")
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	first := createTestUser(t, q, "ana")

	now := time.Now()
	_, err := q.CreateUser(context.Background(), CreateUserParams{
		Username:  "ana",
		Email:     "other@example.com",
		FirstName: "Other",
		LastName:  "Person",
		Password:  "x",
		ImageUrl:  DefaultUserImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	found, err := q.GetUserByUsername(context.Background(), "ana")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if found.ID != first.ID {
		t.Errorf("ID = %d, want %d", found.ID, first.ID)
	}
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	_, err := New(db).GetUserByUsername(context.Background(), "nobody")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows, got %v", err)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should be true")
	}
}

func TestUpdateUserProfile_LeavesCredentials(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	user := createTestUser(t, q, "ana")

	updated, err := q.UpdateUserProfile(context.Background(), UpdateUserProfileParams{
		FirstName:   "Ana",
		LastName:    "Lee",
		Description: "new",
		Email:       "ana@example.org",
		ImageUrl:    "https://example.org/a.png",
		UpdatedAt:   time.Now(),
		ID:          user.ID,
	})
	if err != nil {
		t.Fatalf("UpdateUserProfile: %v", err)
	}

	if updated.Username != "ana" {
		t.Errorf("Username = %q, want ana", updated.Username)
	}
	if updated.Password != user.Password {
		t.Error("password must not change on profile update")
	}
	if updated.Email != "ana@example.org" {
		t.Errorf("Email = %q", updated.Email)
	}
}

func TestCreateCafe_WithCity(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()
	now := time.Now()

	cafe, err := q.CreateCafe(ctx, CreateCafeParams{
		Name:      "Test Cafe",
		Address:   "1 Main St",
		CityCode:  "sf",
		ImageUrl:  DefaultCafeImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateCafe: %v", err)
	}

	row, err := q.GetCafeWithCity(ctx, cafe.ID)
	if err != nil {
		t.Fatalf("GetCafeWithCity: %v", err)
	}
	if row.CityState() != "San Francisco, CA" {
		t.Errorf("CityState() = %q, want %q", row.CityState(), "San Francisco, CA")
	}
}

func TestCreateCafe_UnknownCity(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	now := time.Now()
	_, err := New(db).CreateCafe(context.Background(), CreateCafeParams{
		Name:      "Nowhere Cafe",
		Address:   "1 Main St",
		CityCode:  "atlantis",
		ImageUrl:  DefaultCafeImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if !IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
}

func TestListCafesWithCity_OrderedByName(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()
	now := time.Now()

	for _, name := range []string{"Zeta", "Alpha", "Mid"} {
		if _, err := q.CreateCafe(ctx, CreateCafeParams{
			Name: name, Address: "x", CityCode: "oak", ImageUrl: DefaultCafeImageURL,
			CreatedAt: now, UpdatedAt: now,
		}); err != nil {
			t.Fatalf("CreateCafe: %v", err)
		}
	}

	cafes, err := q.ListCafesWithCity(ctx)
	if err != nil {
		t.Fatalf("ListCafesWithCity: %v", err)
	}
	want := []string{"Alpha", "Mid", "Zeta"}
	for i, c := range cafes {
		if c.Name != want[i] {
			t.Errorf("cafes[%d] = %q, want %q", i, c.Name, want[i])
		}
	}

	byCity, err := q.ListCafesByCity(ctx, "oak")
	if err != nil {
		t.Fatalf("ListCafesByCity: %v", err)
	}
	if len(byCity) != 3 {
		t.Errorf("len(byCity) = %d, want 3", len(byCity))
	}
}

func TestCity_RestrictDeleteWhenReferenced(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()
	now := time.Now()
	if _, err := q.CreateCafe(ctx, CreateCafeParams{
		Name: "Pinned", Address: "x", CityCode: "berk", ImageUrl: DefaultCafeImageURL,
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("CreateCafe: %v", err)
	}

	_, err := db.ExecContext(ctx, `UPDATE cities SET code = 'brk' WHERE code = 'berk'`)
	if !IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
}

func TestSeed(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	if err := Seed(ctx, db, false); err != nil {
		t.Fatalf("Seed(false): %v", err)
	}
	if n, _ := New(db).CountCafes(ctx); n != 0 {
		t.Fatalf("CountCafes = %d after disabled seed", n)
	}

	if err := Seed(ctx, db, true); err != nil {
		t.Fatalf("Seed(true): %v", err)
	}
	first, _ := New(db).CountCafes(ctx)
	if first != int64(len(sampleCafes)) {
		t.Fatalf("CountCafes = %d, want %d", first, len(sampleCafes))
	}

	// second run is a no-op
	if err := Seed(ctx, db, true); err != nil {
		t.Fatalf("Seed(true) again: %v", err)
	}
	second, _ := New(db).CountCafes(ctx)
	if second != first {
		t.Errorf("CountCafes = %d after reseed, want %d", second, first)
	}
}

func TestSeedCities_Upsert(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	err := SeedCities(ctx, db, []City{
		{Code: "sf", Name: "San Francisco", State: "CA"},
		{Code: "pdx", Name: "Portland", State: "OR"},
	})
	if err != nil {
		t.Fatalf("SeedCities: %v", err)
	}

	city, err := New(db).GetCityByCode(ctx, "pdx")
	if err != nil {
		t.Fatalf("GetCityByCode: %v", err)
	}
	if city.Label() != "Portland, OR" {
		t.Errorf("Label() = %q", city.Label())
	}
}

func TestDeleteOldEvents(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	recent := time.Now()
	for _, ts := range []time.Time{old, recent} {
		if _, err := q.CreateEvent(ctx, CreateEventParams{
			Level: "info", Category: "auth", Message: "m", Metadata: "{}", CreatedAt: ts,
		}); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	n, err := q.DeleteOldEvents(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOldEvents: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	events, err := q.ListEventsByCategory(ctx, ListEventsByCategoryParams{Category: "auth", Limit: 10})
	if err != nil {
		t.Fatalf("ListEventsByCategory: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("len(events) = %d, want 1", len(events))
	}
}
