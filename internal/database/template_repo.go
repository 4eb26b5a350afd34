package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/ComputerEndProgram/locutus/internal/domain"
	"github.com/ComputerEndProgram/locutus/internal/domain/contract"
	"github.com/ComputerEndProgram/locutus/internal/domain/entity"
)

type templateRepo struct {
	db dbConn
}

func newTemplateRepo(db dbConn) contract.TemplateRepo {
	return &templateRepo{db: db}
}

func (r *templateRepo) Create(tpl *entity.Template) error {
	query := `
		INSERT INTO templates (guild_id, name, content, is_default)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		tpl.GuildID,
		tpl.Name,
		tpl.Content,
		tpl.IsDefault,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return domain.NewConflictError("template named %q already exists for guild %s", tpl.Name, tpl.GuildID)
		}
		return fmt.Errorf("failed to create template: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	tpl.ID = id
	return nil
}

func (r *templateRepo) Update(tpl *entity.Template) error {
	query := `
		UPDATE templates SET
			name = ?,
			content = ?
		WHERE id = ? AND guild_id = ?
	`

	result, err := r.db.Exec(query,
		tpl.Name,
		tpl.Content,
		tpl.ID,
		tpl.GuildID,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return domain.NewConflictError("template named %q already exists for guild %s", tpl.Name, tpl.GuildID)
		}
		return fmt.Errorf("failed to update template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("template", tpl.ID)
	}

	return nil
}

func (r *templateRepo) Delete(guildID string, id int64) error {
	result, err := r.db.Exec(`DELETE FROM templates WHERE id = ? AND guild_id = ?`, id, guildID)
	if err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("template", id)
	}

	return nil
}

func (r *templateRepo) GetByID(guildID string, id int64) (*entity.Template, error) {
	tpl := &entity.Template{}
	query := `
		SELECT id, guild_id, name, content, is_default
		FROM templates
		WHERE id = ? AND guild_id = ?
	`

	err := r.db.QueryRow(query, id, guildID).Scan(
		&tpl.ID,
		&tpl.GuildID,
		&tpl.Name,
		&tpl.Content,
		&tpl.IsDefault,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return tpl, nil
}

func (r *templateRepo) ListByGuild(guildID string) ([]*entity.Template, error) {
	query := `
		SELECT id, guild_id, name, content, is_default
		FROM templates
		WHERE guild_id = ?
		ORDER BY id
	`

	rows, err := r.db.Query(query, guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []*entity.Template
	for rows.Next() {
		tpl := &entity.Template{}
		err := rows.Scan(
			&tpl.ID,
			&tpl.GuildID,
			&tpl.Name,
			&tpl.Content,
			&tpl.IsDefault,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, tpl)
	}

	return templates, nil
}

func (r *templateRepo) ClearDefault(guildID string) error {
	_, err := r.db.Exec(`UPDATE templates SET is_default = 0 WHERE guild_id = ?`, guildID)
	if err != nil {
		return fmt.Errorf("failed to clear default template: %w", err)
	}

	return nil
}

func (r *templateRepo) SetDefault(guildID string, id int64) error {
	result, err := r.db.Exec(`UPDATE templates SET is_default = 1 WHERE id = ? AND guild_id = ?`, id, guildID)
	if err != nil {
		return fmt.Errorf("failed to set default template: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.NewNotFoundError("template", id)
	}

	return nil
}
