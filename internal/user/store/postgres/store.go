// Package postgres adapts the user store contract to PostgreSQL stored
// procedures. The procedures own the SQL (including the joins that resolve
// the geographic display names); this adapter only invokes them by name with
// positional parameters and scans the results.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"padron/internal/user/models"
	"padron/pkg/platform/sentinel"
)

// Store is the stored-procedure-backed user store. Pure I/O; all decision
// logic stays in the service.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// New constructs a PostgreSQL-backed user store.
func New(db *sql.DB, logger *slog.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) Create(ctx context.Context, user *models.User) (int, error) {
	start := time.Now()
	var id int
	err := s.db.QueryRowContext(ctx,
		`SELECT sp_register_user($1, $2, $3, $4)`,
		user.Name, user.Phone, user.Address, user.MunicipalityID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("sp_register_user: %w", err)
	}
	s.logCall(ctx, "sp_register_user", start)
	return id, nil
}

func (s *Store) ListAll(ctx context.Context) ([]*models.UserRecord, error) {
	start := time.Now()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, address, municipality_name, department_name, country_name
		 FROM sp_get_all_users()`,
	)
	if err != nil {
		return nil, fmt.Errorf("sp_get_all_users: %w", err)
	}
	defer rows.Close()

	var records []*models.UserRecord
	for rows.Next() {
		record, err := scanUserRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("sp_get_all_users: scan: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sp_get_all_users: %w", err)
	}
	s.logCall(ctx, "sp_get_all_users", start)
	return records, nil
}

func (s *Store) FindByID(ctx context.Context, id int) (*models.UserRecord, error) {
	start := time.Now()
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, address, municipality_name, department_name, country_name
		 FROM sp_get_user_by_id($1)`,
		id,
	)
	record, err := scanUserRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("sp_get_user_by_id: %w", err)
	}
	s.logCall(ctx, "sp_get_user_by_id", start)
	return record, nil
}

func (s *Store) Update(ctx context.Context, user *models.User) error {
	start := time.Now()
	_, err := s.db.ExecContext(ctx,
		`SELECT sp_update_user($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Phone, user.Address, user.MunicipalityID,
	)
	if err != nil {
		return fmt.Errorf("sp_update_user: %w", err)
	}
	s.logCall(ctx, "sp_update_user", start)
	return nil
}

func (s *Store) DeleteByID(ctx context.Context, id int) error {
	start := time.Now()
	_, err := s.db.ExecContext(ctx, `SELECT sp_delete_user($1)`, id)
	if err != nil {
		return fmt.Errorf("sp_delete_user: %w", err)
	}
	s.logCall(ctx, "sp_delete_user", start)
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUserRecord(sc scanner) (*models.UserRecord, error) {
	var record models.UserRecord
	err := sc.Scan(
		&record.ID,
		&record.Name,
		&record.Phone,
		&record.Address,
		&record.MunicipalityName,
		&record.DepartmentName,
		&record.CountryName,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Store) logCall(ctx context.Context, procedure string, start time.Time) {
	s.logger.DebugContext(ctx, "stored procedure completed",
		"procedure", procedure,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
