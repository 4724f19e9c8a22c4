package store

import (
	"database/sql"
	"fmt"
	"strconv"
)

// GetConfig 获取配置项
func (s *Store) GetConfig(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("config key not found: %s", key)
		}
		return "", err
	}
	return value, nil
}

// GetConfigInt 获取整数配置项
func (s *Store) GetConfigInt(key string) (int, error) {
	value, err := s.GetConfig(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// SetConfig 设置配置项
func (s *Store) SetConfig(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

// SetConfigInt 设置整数配置项
func (s *Store) SetConfigInt(key string, value int) error {
	return s.SetConfig(key, strconv.Itoa(value))
}

// GetCurrentYear 当前操作的仿真年度
func (s *Store) GetCurrentYear() (int, error) {
	year, err := s.GetConfigInt("current_year")
	if err != nil {
		return 0, fmt.Errorf("failed to get current_year: %w", err)
	}
	return year, nil
}

// SetCurrentYear 设置当前仿真年度
func (s *Store) SetCurrentYear(year int) error {
	return s.SetConfigInt("current_year", year)
}

// GetDefaultOffice 默认展示的办公室；未配置时返回空串
func (s *Store) GetDefaultOffice() string {
	office, err := s.GetConfig("default_office")
	if err != nil {
		return ""
	}
	return office
}

// SetDefaultOffice 设置默认办公室
func (s *Store) SetDefaultOffice(office string) error {
	return s.SetConfig("default_office", office)
}
