package pets

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/petcare/internal/common"
	"github.com/dmitrijs2005/petcare/internal/server/models"
	"github.com/google/go-cmp/cmp"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var petCols = []string{"id", "user_id", "kind_id", "species", "name", "gender", "neutralize", "birth", "weight", "animal_pic", "death", "diseases", "description"}

const (
	qInsert = `(?s)^INSERT\s+INTO\s+pets\s*\(user_id,.*description\)\s*VALUES\s*\(\$1,.*\$12\)\s*RETURNING\s+id\s*$`
	qByID   = `(?s)^SELECT\s+id,\s*user_id,.*description\s+FROM\s+pets\s+WHERE\s+id\s*=\s*\$1\s*$`
	qByUser = `(?s)^SELECT\s+id,\s*user_id,.*description\s+FROM\s+pets\s+WHERE\s+user_id\s*=\s*\$1\s+ORDER\s+BY\s+id\s*$`
	qUpdate = `(?s)^UPDATE\s+pets\s+SET\s+kind_id\s*=\s*\$2,.*description\s*=\s*\$12\s+WHERE\s+id\s*=\s*\$1\s*$`
	qDelete = `(?s)^DELETE\s+FROM\s+pets\s+WHERE\s+id\s*=\s*\$1\s*$`
)

func TestCreate_NullBirth(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).
		WithArgs(int64(1), int64(2), true, "Coco", "F", false, nil, 3.5, "", false, "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	p := &models.Pet{UserID: 1, KindID: 2, Species: true, Name: "Coco", Gender: "F", Weight: 3.5}
	got, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 11 {
		t.Fatalf("want id 11, got %d", got.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qInsert).WillReturnError(errors.New("fk violation"))

	_, err := repo.Create(context.Background(), &models.Pet{UserID: 1})
	if err == nil || !regexp.MustCompile(`db error: .*fk violation`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	birth := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(qByID).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(petCols).
			AddRow(int64(3), int64(1), int64(2), false, "Max", "M", true, birth, 7.25, "pic", false, "none", "good boy"))
	mock.ExpectQuery(qByID).
		WithArgs(int64(4)).
		WillReturnError(sql.ErrNoRows)

	got, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	want := &models.Pet{ID: 3, UserID: 1, KindID: 2, Name: "Max", Gender: "M", Neutralize: true,
		Birth: birth, Weight: 7.25, AnimalPic: "pic", Diseases: "none", Description: "good boy"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("pet mismatch (-want +got):\n%s", diff)
	}

	if _, err := repo.GetByID(context.Background(), 4); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound, got %v", err)
	}
}

func TestListByUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByUser).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(petCols).
			AddRow(int64(1), int64(1), int64(2), false, "A", "M", false, nil, 1.0, "", false, "", "").
			AddRow(int64(2), int64(1), int64(2), true, "B", "F", false, nil, 2.0, "", true, "", ""))

	got, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "A" || !got[1].Death || !got[0].Birth.IsZero() {
		t.Fatalf("unexpected pets: %+v", got)
	}
}

func TestListByUser_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(qByUser).WithArgs(int64(9)).WillReturnRows(sqlmock.NewRows(petCols))

	got, err := repo.ListByUser(context.Background(), 9)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
}

func TestListByIDs_EmptySkipsQuery(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	got, err := repo.ListByIDs(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("got (%v, %v)", got, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected query: %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	birth := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	p := &models.Pet{ID: 5, KindID: 1, Name: "Z", Birth: birth}

	mock.ExpectExec(qUpdate).
		WithArgs(int64(5), int64(1), false, "Z", "", false, birth, 0.0, "", false, "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qDelete).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(qDelete).WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), p); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := repo.Delete(context.Background(), 5); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want ErrorNotFound on second delete, got %v", err)
	}
}
