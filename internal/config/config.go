package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"fteboard/internal/calculator"
	"fteboard/internal/model"
)

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Planning PlanningConfig `toml:"planning"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir    string `toml:"data_dir"`
	AutoBackup bool   `toml:"auto_backup"`
}

// PlanningConfig 业务配置：货币单位、职级分类表与静态基线办公室
type PlanningConfig struct {
	Currency        string          `toml:"currency"`
	Journeys        []JourneyConfig `toml:"journeys"`
	BaselineOffices []OfficeConfig  `toml:"baseline_offices"`
}

// JourneyConfig 单个 Journey 的职级分桶
type JourneyConfig struct {
	Name   string   `toml:"name"`
	Levels []string `toml:"levels"`
}

// OfficeConfig 静态基线办公室
type OfficeConfig struct {
	Name  string                `toml:"name"`
	Roles map[string]RoleConfig `toml:"roles"`
}

// RoleConfig 单角色基线：无职级角色只配 total，有职级角色按职级配值
type RoleConfig struct {
	Total  *float64           `toml:"total,omitempty"`
	Levels map[string]float64 `toml:"levels,omitempty"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20470,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:    "data",
			AutoBackup: true,
		},
		Planning: PlanningConfig{
			Currency: "kSEK",
			Journeys: []JourneyConfig{
				{Name: "Journey 1", Levels: []string{"A", "AC", "C"}},
				{Name: "Journey 2", Levels: []string{"SrC", "AM"}},
				{Name: "Journey 3", Levels: []string{"M", "SrM"}},
				{Name: "Journey 4", Levels: []string{"PiP"}},
			},
		},
	}
}

// JourneyTable 把配置的分类表编译成引擎使用的 JourneyTable。
// 加载时即校验对 8 个标准职级完备且互斥，坏配置直接拒绝启动。
func (c *AppConfig) JourneyTable() (*calculator.JourneyTable, error) {
	defs := make([]calculator.JourneyDefinition, 0, len(c.Planning.Journeys))
	for _, jc := range c.Planning.Journeys {
		def := calculator.JourneyDefinition{Name: jc.Name}
		for _, lv := range jc.Levels {
			def.Levels = append(def.Levels, model.Level(lv))
		}
		defs = append(defs, def)
	}
	table, err := calculator.NewJourneyTable(defs)
	if err != nil {
		return nil, fmt.Errorf("invalid journey configuration: %w", err)
	}
	return table, nil
}

// BaselineOffices 把静态基线配置转成引擎输入
func (c *AppConfig) BaselineOffices() []calculator.BaselineOffice {
	out := make([]calculator.BaselineOffice, 0, len(c.Planning.BaselineOffices))
	for _, oc := range c.Planning.BaselineOffices {
		b := calculator.BaselineOffice{
			Name:  oc.Name,
			Roles: make(map[string]calculator.BaselineRole, len(oc.Roles)),
		}
		for role, rc := range oc.Roles {
			br := calculator.BaselineRole{Total: rc.Total}
			if len(rc.Levels) > 0 {
				br.Levels = make(map[model.Level]float64, len(rc.Levels))
				for lv, fte := range rc.Levels {
					br.Levels[model.Level(lv)] = fte
				}
			}
			b.Roles[role] = br
		}
		out = append(out, b)
	}
	return out
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")
	if v := os.Getenv("FTEBOARD_CONFIG"); v != "" {
		configPath = v
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			return config, info, nil
		}
		return nil, info, err
	}

	info.PortSpecified = isPortSpecifiedInToml(data)

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}

	// 允许只覆盖部分业务配置
	if config.Planning.Currency == "" {
		config.Planning.Currency = "kSEK"
	}
	if len(config.Planning.Journeys) == 0 {
		config.Planning.Journeys = DefaultConfig().Planning.Journeys
	}

	return config, info, nil
}

// LoadConfig 从 config.toml 加载配置
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// SaveConfig 保存配置到 config.toml
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 确保数据目录存在
func EnsureDataDir(config *AppConfig) (string, error) {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	dataDir := filepath.Join(exeDir, config.Data.DataDir)

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	subdirs := []string{"uploads", "exports", "backups"}
	for _, subdir := range subdirs {
		path := filepath.Join(dataDir, subdir)
		if err := os.MkdirAll(path, 0755); err != nil {
			return "", err
		}
	}

	return dataDir, nil
}
