package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open error: %v", err)
	}
	return gdb, mock
}

func TestDeleteCascade_AllOwnedRecordsInOneTransaction(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewUserRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `checkins`").
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `lists`").
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `liked_breweries`").
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `users`").
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteCascade(7); err != nil {
		t.Fatalf("DeleteCascade error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteCascade_RollsBackOnFailure(t *testing.T) {
	gdb, mock := newMockGorm(t)
	repo := NewUserRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `checkins`").
		WithArgs(uint(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `lists`").
		WithArgs(uint(7)).
		WillReturnError(errors.New("store unavailable"))
	mock.ExpectRollback()

	if err := repo.DeleteCascade(7); err == nil {
		t.Fatalf("expected error when a dependent delete fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
