//go:build integration

package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"padron/internal/user/models"
	"padron/internal/user/store/postgres"
	"padron/pkg/platform/sentinel"
	"padron/pkg/testutil/containers"
)

// schema mirrors the production geographic hierarchy and the five stored
// procedures the adapter invokes.
const schema = `
CREATE TABLE IF NOT EXISTS countries (
	id   SERIAL PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS departments (
	id         SERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	country_id INT NOT NULL REFERENCES countries(id)
);
CREATE TABLE IF NOT EXISTS municipalities (
	id            SERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	department_id INT NOT NULL REFERENCES departments(id)
);
CREATE TABLE IF NOT EXISTS users (
	id              SERIAL PRIMARY KEY,
	name            TEXT NOT NULL,
	phone           TEXT NOT NULL,
	address         TEXT NOT NULL,
	municipality_id INT NOT NULL REFERENCES municipalities(id)
);

CREATE OR REPLACE FUNCTION sp_register_user(p_name TEXT, p_phone TEXT, p_address TEXT, p_municipality_id INT)
RETURNS INT AS $$
	INSERT INTO users (name, phone, address, municipality_id)
	VALUES (p_name, p_phone, p_address, p_municipality_id)
	RETURNING id;
$$ LANGUAGE sql;

CREATE OR REPLACE FUNCTION sp_get_all_users()
RETURNS TABLE (id INT, name TEXT, phone TEXT, address TEXT, municipality_name TEXT, department_name TEXT, country_name TEXT) AS $$
	SELECT u.id, u.name, u.phone, u.address, m.name, d.name, c.name
	FROM users u
	JOIN municipalities m ON m.id = u.municipality_id
	JOIN departments d ON d.id = m.department_id
	JOIN countries c ON c.id = d.country_id
	ORDER BY u.id;
$$ LANGUAGE sql;

CREATE OR REPLACE FUNCTION sp_get_user_by_id(p_id INT)
RETURNS TABLE (id INT, name TEXT, phone TEXT, address TEXT, municipality_name TEXT, department_name TEXT, country_name TEXT) AS $$
	SELECT u.id, u.name, u.phone, u.address, m.name, d.name, c.name
	FROM users u
	JOIN municipalities m ON m.id = u.municipality_id
	JOIN departments d ON d.id = m.department_id
	JOIN countries c ON c.id = d.country_id
	WHERE u.id = p_id;
$$ LANGUAGE sql;

CREATE OR REPLACE FUNCTION sp_update_user(p_id INT, p_name TEXT, p_phone TEXT, p_address TEXT, p_municipality_id INT)
RETURNS VOID AS $$
	UPDATE users
	SET name = p_name, phone = p_phone, address = p_address, municipality_id = p_municipality_id
	WHERE id = p_id;
$$ LANGUAGE sql;

CREATE OR REPLACE FUNCTION sp_delete_user(p_id INT)
RETURNS VOID AS $$
	DELETE FROM users WHERE id = p_id;
$$ LANGUAGE sql;
`

const seed = `
INSERT INTO countries (name) VALUES ('Colombia');
INSERT INTO departments (name, country_id) VALUES ('Antioquia', 1);
INSERT INTO municipalities (name, department_id) VALUES ('Medellín', 1);
`

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *postgres.Store
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())

	ctx := context.Background()
	s.Require().NoError(s.postgres.ApplySchema(ctx, schema))
	s.store = postgres.New(s.postgres.DB, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *PostgresStoreSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx, "users", "municipalities", "departments", "countries"))
	_, err := s.postgres.DB.ExecContext(ctx, seed)
	s.Require().NoError(err)
}

func newStoredUser() *models.User {
	return &models.User{
		Name:           "Test User",
		Phone:          "+573001234567",
		Address:        "Test Address",
		MunicipalityID: 1,
	}
}

func (s *PostgresStoreSuite) TestCreateAndFindByID() {
	ctx := context.Background()

	id, err := s.store.Create(ctx, newStoredUser())
	s.Require().NoError(err)
	s.Positive(id)

	record, err := s.store.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("Test User", record.Name)
	s.Equal("Medellín", record.MunicipalityName)
	s.Equal("Antioquia", record.DepartmentName)
	s.Equal("Colombia", record.CountryName)
}

func (s *PostgresStoreSuite) TestFindByIDMissing() {
	_, err := s.store.FindByID(context.Background(), 9999)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListAllReturnsPopulatedProjection() {
	ctx := context.Background()

	_, err := s.store.Create(ctx, newStoredUser())
	s.Require().NoError(err)
	second := newStoredUser()
	second.Name = "Second User"
	_, err = s.store.Create(ctx, second)
	s.Require().NoError(err)

	records, err := s.store.ListAll(ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("Test User", records[0].Name)
	s.Equal("Second User", records[1].Name)
	s.Equal("Colombia", records[0].CountryName)
}

func (s *PostgresStoreSuite) TestUpdateReplacesAllFields() {
	ctx := context.Background()

	id, err := s.store.Create(ctx, newStoredUser())
	s.Require().NoError(err)

	updated := newStoredUser()
	updated.ID = id
	updated.Name = "Renamed User"
	updated.Address = "Carrera 45"
	s.Require().NoError(s.store.Update(ctx, updated))

	record, err := s.store.FindByID(ctx, id)
	s.Require().NoError(err)
	s.Equal("Renamed User", record.Name)
	s.Equal("Carrera 45", record.Address)
}

func (s *PostgresStoreSuite) TestDeleteByIDIsIdempotent() {
	ctx := context.Background()

	id, err := s.store.Create(ctx, newStoredUser())
	s.Require().NoError(err)

	s.Require().NoError(s.store.DeleteByID(ctx, id))
	_, err = s.store.FindByID(ctx, id)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(s.store.DeleteByID(ctx, id))
}
