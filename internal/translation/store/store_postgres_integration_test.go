//go:build integration

package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"registrar/internal/translation/models"
	"registrar/internal/translation/ports"
	"registrar/internal/translation/store"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "translations")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestCreateManyAndFindAllOrdering() {
	ctx := context.Background()

	count, err := s.store.CreateMany(ctx, []models.Translation{
		{EntityType: "Faculty", EntityID: "F1", Field: "title", Lang: "vi", Value: "Khoa CNTT"},
		{EntityType: "Faculty", EntityID: "F1", Field: "title", Lang: "en", Value: "Faculty of IT"},
		{EntityType: "Faculty", EntityID: "F1", Field: "description", Lang: "vi", Value: "Mô tả"},
	})
	s.Require().NoError(err)
	s.Equal(3, count)

	rows, err := s.store.FindAll(ctx, "Faculty", "F1", ports.Filter{})
	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal("description", rows[0].Field)
	s.Equal("en", rows[1].Lang)
	s.Equal("vi", rows[2].Lang)
	s.False(rows[0].CreatedAt.IsZero())
}

func (s *PostgresStoreSuite) TestFindOne() {
	ctx := context.Background()

	_, err := s.store.CreateMany(ctx, []models.Translation{
		{EntityType: "Subject", EntityID: "S1", Field: "title", Lang: "en", Value: "Databases"},
	})
	s.Require().NoError(err)

	row, err := s.store.FindOne(ctx, "Subject", "S1", "title", "en")
	s.Require().NoError(err)
	s.Equal("Databases", row.Value)

	_, err = s.store.FindOne(ctx, "Subject", "S1", "title", "fr")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestFindAllFilters() {
	ctx := context.Background()

	_, err := s.store.CreateMany(ctx, []models.Translation{
		{EntityType: "Faculty", EntityID: "F1", Field: "title", Lang: "vi", Value: "Khoa CNTT"},
		{EntityType: "Faculty", EntityID: "F1", Field: "title", Lang: "en", Value: "Faculty of IT"},
		{EntityType: "Faculty", EntityID: "F1", Field: "description", Lang: "en", Value: "About"},
	})
	s.Require().NoError(err)

	rows, err := s.store.FindAll(ctx, "Faculty", "F1", ports.Filter{Lang: "en"})
	s.Require().NoError(err)
	s.Len(rows, 2)

	rows, err = s.store.FindAll(ctx, "Faculty", "F1", ports.Filter{Field: "title", Lang: "vi"})
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("Khoa CNTT", rows[0].Value)
}

func (s *PostgresStoreSuite) TestDeleteMany() {
	ctx := context.Background()

	_, err := s.store.CreateMany(ctx, []models.Translation{
		{EntityType: "Faculty", EntityID: "F1", Field: "title", Lang: "vi", Value: "Khoa CNTT"},
		{EntityType: "Faculty", EntityID: "F1", Field: "title", Lang: "en", Value: "Faculty of IT"},
		{EntityType: "Faculty", EntityID: "F2", Field: "title", Lang: "vi", Value: "Khoa Kinh tế"},
	})
	s.Require().NoError(err)

	count, err := s.store.DeleteMany(ctx, "Faculty", "F1")
	s.Require().NoError(err)
	s.Equal(2, count)

	rows, err := s.store.FindAll(ctx, "Faculty", "F2", ports.Filter{})
	s.Require().NoError(err)
	s.Len(rows, 1, "unrelated entities keep their rows")
}

func (s *PostgresStoreSuite) TestRunInTxRollsBackOnError() {
	ctx := context.Background()

	_, err := s.store.CreateMany(ctx, []models.Translation{
		{EntityType: "Faculty", EntityID: "F1", Field: "title", Lang: "vi", Value: "Khoa CNTT"},
	})
	s.Require().NoError(err)

	err = s.store.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.store.DeleteMany(txCtx, "Faculty", "F1"); err != nil {
			return err
		}
		return errors.New("abort")
	})
	s.Require().Error(err)

	rows, err := s.store.FindAll(ctx, "Faculty", "F1", ports.Filter{})
	s.Require().NoError(err)
	s.Len(rows, 1, "a failed transaction leaves the rows untouched")
}

func (s *PostgresStoreSuite) TestRunInTxCommits() {
	ctx := context.Background()

	err := s.store.RunInTx(ctx, func(txCtx context.Context) error {
		_, err := s.store.CreateMany(txCtx, []models.Translation{
			{EntityType: "Faculty", EntityID: "F1", Field: "title", Lang: "vi", Value: "Khoa CNTT"},
			{EntityType: "Faculty", EntityID: "F1", Field: "title", Lang: "en", Value: "Faculty of IT"},
		})
		return err
	})
	s.Require().NoError(err)

	rows, err := s.store.FindAll(ctx, "Faculty", "F1", ports.Filter{})
	s.Require().NoError(err)
	s.Len(rows, 2)
}
