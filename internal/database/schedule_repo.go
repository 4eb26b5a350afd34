package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ComputerEndProgram/locutus/internal/domain"
	"github.com/ComputerEndProgram/locutus/internal/domain/contract"
	"github.com/ComputerEndProgram/locutus/internal/domain/entity"
)

const scheduleColumns = `id, guild_id, template_id, system_name, weekday, time_local, timezone,
		advance_minutes, channel_id, enabled, created_by_user_id, next_run_utc, created_at, updated_at`

type scheduleRepo struct {
	db dbConn
}

func newScheduleRepo(db dbConn) contract.ScheduleRepo {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(s *entity.Schedule) error {
	query := `
		INSERT INTO schedules (guild_id, template_id, system_name, weekday, time_local, timezone,
			advance_minutes, channel_id, enabled, created_by_user_id, next_run_utc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		s.GuildID,
		s.TemplateID,
		s.SystemName,
		s.Weekday,
		s.TimeLocal,
		s.Timezone,
		s.AdvanceMinutes,
		s.ChannelID,
		s.Enabled,
		s.CreatedByUserID,
		formatUTC(s.NextRunUTC),
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	s.ID = id
	return nil
}

// Update rewrites every editable field, including next_run_utc, which the
// caller recomputed if a timing field changed. Field edits are
// last-write-wins; only Advance guards next_run_utc against races.
func (r *scheduleRepo) Update(s *entity.Schedule) error {
	query := `
		UPDATE schedules SET
			template_id = ?,
			system_name = ?,
			weekday = ?,
			time_local = ?,
			timezone = ?,
			advance_minutes = ?,
			channel_id = ?,
			enabled = ?,
			next_run_utc = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND guild_id = ?
	`

	result, err := r.db.Exec(query,
		s.TemplateID,
		s.SystemName,
		s.Weekday,
		s.TimeLocal,
		s.Timezone,
		s.AdvanceMinutes,
		s.ChannelID,
		s.Enabled,
		formatUTC(s.NextRunUTC),
		s.ID,
		s.GuildID,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("schedule", s.ID)
	}

	return nil
}

func (r *scheduleRepo) Delete(guildID string, id int64) error {
	result, err := r.db.Exec(`DELETE FROM schedules WHERE id = ? AND guild_id = ?`, id, guildID)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("schedule", id)
	}

	return nil
}

func (r *scheduleRepo) GetByID(guildID string, id int64) (*entity.Schedule, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules WHERE id = ? AND guild_id = ?`, scheduleColumns)

	s, err := r.scanOne(r.db.QueryRow(query, id, guildID))
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	return s, nil
}

func (r *scheduleRepo) ListByGuild(guildID string) ([]*entity.Schedule, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules WHERE guild_id = ? ORDER BY id`, scheduleColumns)

	rows, err := r.db.Query(query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

func (r *scheduleRepo) CountByTemplate(guildID string, templateID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM schedules WHERE guild_id = ? AND template_id = ?`

	if err := r.db.QueryRow(query, guildID, templateID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count schedules by template: %w", err)
	}

	return count, nil
}

func (r *scheduleRepo) SetEnabled(guildID string, id int64, enabled bool) error {
	query := `
		UPDATE schedules SET
			enabled = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND guild_id = ?
	`

	result, err := r.db.Exec(query, enabled, id, guildID)
	if err != nil {
		return fmt.Errorf("failed to set schedule enabled status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("schedule", id)
	}

	return nil
}

// ListDue applies the advance-notice offset inside the query: a schedule is
// due once next_run_utc minus advance_minutes has passed. The nominal
// next_run_utc itself stays untouched until Advance.
func (r *scheduleRepo) ListDue(asOf time.Time) ([]*entity.Schedule, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM schedules
		WHERE enabled = 1
			AND datetime(next_run_utc, '-' || advance_minutes || ' minutes') <= datetime(?)
		ORDER BY next_run_utc ASC
	`, scheduleColumns)

	rows, err := r.db.Query(query, formatUTC(asOf))
	if err != nil {
		return nil, fmt.Errorf("failed to list due schedules: %w", err)
	}
	defer rows.Close()

	return r.scanAll(rows)
}

// Advance re-arms the schedule one calendar week past firedNominalUTC. The
// update only matches while next_run_utc still equals the fired instant, so
// a concurrent or repeated advance for the same firing hits zero rows and is
// rejected as stale instead of pushing the schedule out a second week.
func (r *scheduleRepo) Advance(id int64, firedNominalUTC time.Time) (time.Time, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedules WHERE id = ?`, scheduleColumns)

	s, err := r.scanOne(r.db.QueryRow(query, id))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get schedule: %w", err)
	}
	if s == nil {
		return time.Time{}, domain.NewNotFoundError("schedule", id)
	}

	next, err := domain.AdvanceByOneWeek(firedNominalUTC, s.Weekday, s.TimeLocal, s.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to compute next run: %w", err)
	}
	if !next.After(firedNominalUTC) {
		return time.Time{}, domain.NewConsistencyError(
			"next run %s is not after fired instant %s for schedule %d",
			formatUTC(next), formatUTC(firedNominalUTC), id)
	}

	result, err := r.db.Exec(`
		UPDATE schedules SET
			next_run_utc = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND next_run_utc = ?
	`, formatUTC(next), id, formatUTC(firedNominalUTC))
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to advance schedule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return time.Time{}, domain.NewConflictError(
			"schedule %d already advanced past %s", id, formatUTC(firedNominalUTC))
	}

	return next, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *scheduleRepo) scan(row rowScanner, s *entity.Schedule) error {
	var nextRun string
	err := row.Scan(
		&s.ID,
		&s.GuildID,
		&s.TemplateID,
		&s.SystemName,
		&s.Weekday,
		&s.TimeLocal,
		&s.Timezone,
		&s.AdvanceMinutes,
		&s.ChannelID,
		&s.Enabled,
		&s.CreatedByUserID,
		&nextRun,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return err
	}

	s.NextRunUTC, err = parseUTC(nextRun)
	return err
}

func (r *scheduleRepo) scanOne(row *sql.Row) (*entity.Schedule, error) {
	s := &entity.Schedule{}
	err := r.scan(row, s)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *scheduleRepo) scanAll(rows *sql.Rows) ([]*entity.Schedule, error) {
	var schedules []*entity.Schedule
	for rows.Next() {
		s := &entity.Schedule{}
		if err := r.scan(rows, s); err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}

	return schedules, rows.Err()
}
