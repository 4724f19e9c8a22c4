package calculator

import (
	"fmt"

	"fteboard/internal/model"
)

// JourneyDefinition 单个 Journey：一组职级的命名分桶
type JourneyDefinition struct {
	Name   string        `json:"name"`
	Levels []model.Level `json:"levels"`
}

// JourneyTable 职级→Journey 的固定分类表。
// 由外部配置提供；加载时校验对 8 个标准职级完备且互斥。
type JourneyTable struct {
	journeys []JourneyDefinition
	byLevel  map[model.Level]string
}

// DefaultJourneys 标准四段 Journey 划分
func DefaultJourneys() []JourneyDefinition {
	return []JourneyDefinition{
		{Name: "Journey 1", Levels: []model.Level{model.LevelA, model.LevelAC, model.LevelC}},
		{Name: "Journey 2", Levels: []model.Level{model.LevelSrC, model.LevelAM}},
		{Name: "Journey 3", Levels: []model.Level{model.LevelM, model.LevelSrM}},
		{Name: "Journey 4", Levels: []model.Level{model.LevelPiP}},
	}
}

// NewJourneyTable 构建并校验分类表
func NewJourneyTable(defs []JourneyDefinition) (*JourneyTable, error) {
	byLevel := make(map[model.Level]string, len(model.AllLevels))
	for _, def := range defs {
		for _, lv := range def.Levels {
			if prev, dup := byLevel[lv]; dup {
				return nil, fmt.Errorf("level %s assigned to both %s and %s", lv, prev, def.Name)
			}
			byLevel[lv] = def.Name
		}
	}
	for _, lv := range model.AllLevels {
		if _, ok := byLevel[lv]; !ok {
			return nil, fmt.Errorf("level %s not assigned to any journey", lv)
		}
	}
	return &JourneyTable{journeys: defs, byLevel: byLevel}, nil
}

// Journeys 按定义顺序返回全部 Journey
func (t *JourneyTable) Journeys() []JourneyDefinition {
	return t.journeys
}

// JourneyOf 职级所属 Journey 名称
func (t *JourneyTable) JourneyOf(level model.Level) string {
	return t.byLevel[level]
}
