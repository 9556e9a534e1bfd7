package postgres_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"tubescribe/internal/domain/entity"
	pg "tubescribe/internal/infra/adapter/persistence/postgres"
)

func userRow(u *entity.User) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "created_at",
	}).AddRow(
		u.ID, u.Username, u.Email, u.PasswordHash, u.CreatedAt,
	)
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	user := &entity.User{
		Username: "alice", Email: "alice@example.com",
		PasswordHash: "$2a$10$hash", CreatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("alice", "alice@example.com", "$2a$10$hash", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	repo := pg.NewUserRepo(db)
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if user.ID != 5 {
		t.Errorf("Create should set generated ID, got %d", user.ID)
	}
}

func TestUserRepo_GetByUsername(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2025, 7, 19, 0, 0, 0, 0, time.UTC)
	want := &entity.User{
		ID: 5, Username: "alice", Email: "alice@example.com",
		PasswordHash: "$2a$10$hash", CreatedAt: now,
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs("alice").
		WillReturnRows(userRow(want))

	repo := pg.NewUserRepo(db)
	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestUserRepo_GetByUsername_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id")).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	repo := pg.NewUserRepo(db)
	got, err := repo.GetByUsername(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetByUsername err=%v", err)
	}
	if got != nil {
		t.Errorf("expected nil user for missing row, got %+v", got)
	}
}

func TestUserRepo_ExistsByUsername(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := pg.NewUserRepo(db)
	got, err := repo.ExistsByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ExistsByUsername err=%v", err)
	}
	if !got {
		t.Error("expected true")
	}
}
