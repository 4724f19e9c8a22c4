package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fteboard/internal/model"
)

// CreateSnapshot 持久化一份新快照并返回其 ID。
// 元数据汇总在此处计算并随快照固化；快照创建后不可变。
func (s *Store) CreateSnapshot(snap *model.PopulationSnapshot) (string, error) {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	snap.Metadata = snap.ComputeMetadata()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO population_snapshot (id, name, office_id, snapshot_date, total_fte, total_salary)
		VALUES (?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Name, snap.OfficeID, snap.SnapshotDate.UTC().Format(time.RFC3339), snap.Metadata.TotalFTE, snap.Metadata.TotalSalary)
	if err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO workforce_line (snapshot_id, line_no, role, level, fte, salary, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, line := range snap.Workforce {
		var level sql.NullString
		if line.Level != nil {
			level = sql.NullString{String: string(*line.Level), Valid: true}
		}
		if _, err := stmt.Exec(snap.ID, i, line.Role, level, line.FTE, line.Salary, line.Notes); err != nil {
			return "", fmt.Errorf("failed to insert workforce line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return snap.ID, nil
}

// GetSnapshot 按 ID 读取完整快照（含 workforce 行）
func (s *Store) GetSnapshot(id string) (*model.PopulationSnapshot, error) {
	snap := &model.PopulationSnapshot{ID: id}
	var dateStr string
	err := s.db.QueryRow(`
		SELECT name, office_id, snapshot_date, total_fte, total_salary
		FROM population_snapshot WHERE id = ?
	`, id).Scan(&snap.Name, &snap.OfficeID, &dateStr, &snap.Metadata.TotalFTE, &snap.Metadata.TotalSalary)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot not found: %s", id)
		}
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	if snap.SnapshotDate, err = time.Parse(time.RFC3339, dateStr); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot date: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT role, level, fte, salary, notes
		FROM workforce_line WHERE snapshot_id = ?
		ORDER BY line_no
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query workforce lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line model.WorkforceLine
		var level sql.NullString
		if err := rows.Scan(&line.Role, &level, &line.FTE, &line.Salary, &line.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan workforce line: %w", err)
		}
		if level.Valid {
			lv := model.Level(level.String)
			line.Level = &lv
		}
		snap.Workforce = append(snap.Workforce, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workforce lines: %w", err)
	}
	return snap, nil
}

// SnapshotSummary 快照列表项（不含 workforce 行）
type SnapshotSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	OfficeID     string    `json:"officeId"`
	SnapshotDate time.Time `json:"snapshotDate"`
	TotalFTE     float64   `json:"totalFte"`
	TotalSalary  float64   `json:"totalSalary"`
}

// ListSnapshots 列出快照；officeID 为空串时不过滤。按日期倒序。
func (s *Store) ListSnapshots(officeID string) ([]SnapshotSummary, error) {
	query := `
		SELECT id, name, office_id, snapshot_date, total_fte, total_salary
		FROM population_snapshot
	`
	args := []any{}
	if officeID != "" {
		query += " WHERE office_id = ?"
		args = append(args, officeID)
	}
	query += " ORDER BY snapshot_date DESC, created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotSummary
	for rows.Next() {
		var it SnapshotSummary
		var dateStr string
		if err := rows.Scan(&it.ID, &it.Name, &it.OfficeID, &dateStr, &it.TotalFTE, &it.TotalSalary); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		if it.SnapshotDate, err = time.Parse(time.RFC3339, dateStr); err != nil {
			return nil, fmt.Errorf("failed to parse snapshot date: %w", err)
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return out, nil
}

// DeleteSnapshot 删除快照（workforce 行级联删除）
func (s *Store) DeleteSnapshot(id string) error {
	res, err := s.db.Exec("DELETE FROM population_snapshot WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("snapshot not found: %s", id)
	}
	return nil
}

// CountSnapshots 快照总数
func (s *Store) CountSnapshots() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(1) FROM population_snapshot").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}
