package importer

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"fteboard/internal/model"
	"fteboard/internal/store"
)

// 快照工作簿的固定表头（第一行），大小写不敏感
var expectedHeader = []string{"role", "level", "fte", "salary", "notes"}

// Coordinator 快照导入协调器
type Coordinator struct {
	store *store.Store
}

// NewCoordinator 创建导入协调器
func NewCoordinator(store *store.Store) *Coordinator {
	return &Coordinator{store: store}
}

// ImportOptions 导入选项
type ImportOptions struct {
	FilePath     string
	OfficeID     string
	SnapshotName string
	SnapshotDate time.Time // 零值时取当天
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string    `json:"type"`    // start/sheet_start/sheet_done/done/error
	Message   string    `json:"message"` // 事件消息
	Data      any       `json:"data"`    // 附加数据
	Timestamp time.Time `json:"timestamp"`
}

// Import 执行导入，返回进度通道。
// 工作簿每个 sheet 视为一个办公室快照（sheet 名即 officeId，
// 除非选项里显式指定了 OfficeID，此时只读第一个 sheet）。
func (c *Coordinator) Import(opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doImport(opts ImportOptions, progressChan chan ProgressEvent) {
	send := func(evt ProgressEvent) {
		evt.Timestamp = time.Now()
		progressChan <- evt
	}

	send(ProgressEvent{
		Type:    "start",
		Message: "开始导入快照工作簿",
		Data:    map[string]string{"filename": filepath.Base(opts.FilePath)},
	})

	f, err := excelize.OpenFile(opts.FilePath)
	if err != nil {
		send(ProgressEvent{Type: "error", Message: fmt.Sprintf("打开工作簿失败: %v", err)})
		return
	}
	defer f.Close()

	date := opts.SnapshotDate
	if date.IsZero() {
		date = time.Now().UTC().Truncate(24 * time.Hour)
	}

	sheets := f.GetSheetList()
	if opts.OfficeID != "" && len(sheets) > 0 {
		sheets = sheets[:1]
	}

	imported := 0
	for _, sheet := range sheets {
		send(ProgressEvent{Type: "sheet_start", Message: fmt.Sprintf("解析 sheet: %s", sheet)})

		lines, err := parseWorkforceSheet(f, sheet)
		if err != nil {
			send(ProgressEvent{Type: "error", Message: fmt.Sprintf("sheet %s 解析失败: %v", sheet, err)})
			return
		}

		officeID := opts.OfficeID
		if officeID == "" {
			officeID = sheet
		}
		name := opts.SnapshotName
		if name == "" {
			name = fmt.Sprintf("%s %s", officeID, date.Format("2006-01-02"))
		}

		snap := &model.PopulationSnapshot{
			Name:         name,
			OfficeID:     officeID,
			SnapshotDate: date,
			Workforce:    lines,
		}
		id, err := c.store.CreateSnapshot(snap)
		if err != nil {
			send(ProgressEvent{Type: "error", Message: fmt.Sprintf("保存快照失败: %v", err)})
			return
		}
		imported++

		send(ProgressEvent{
			Type:    "sheet_done",
			Message: fmt.Sprintf("sheet %s 导入完成，共 %d 行", sheet, len(lines)),
			Data:    map[string]any{"snapshotId": id, "lines": len(lines)},
		})
	}

	send(ProgressEvent{
		Type:    "done",
		Message: fmt.Sprintf("导入完成，共 %d 个快照", imported),
		Data:    map[string]int{"snapshots": imported},
	})
}

// parseWorkforceSheet 解析固定布局的快照 sheet：
// 首行表头 Role|Level|FTE|Salary|Notes，其后每行一条人员配置。
func parseWorkforceSheet(f *excelize.File, sheet string) ([]model.WorkforceLine, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	var lines []model.WorkforceLine
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		line, err := parseWorkforceRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no workforce rows found")
	}
	return lines, nil
}

func checkHeader(header []string) error {
	if len(header) < 4 {
		return fmt.Errorf("header too short: %v", header)
	}
	for i, want := range expectedHeader {
		if i >= len(header) {
			// notes 列可省略
			if want == "notes" {
				break
			}
			return fmt.Errorf("missing header column %q", want)
		}
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseWorkforceRow(row []string) (model.WorkforceLine, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	line := model.WorkforceLine{Role: cell(0), Notes: cell(4)}
	if line.Role == "" {
		return line, fmt.Errorf("empty role")
	}
	if lv := cell(1); lv != "" {
		level := model.Level(lv)
		line.Level = &level
	}

	var err error
	if line.FTE, err = parseFloatCell(cell(2)); err != nil {
		return line, fmt.Errorf("bad fte value %q", cell(2))
	}
	if line.Salary, err = parseFloatCell(cell(3)); err != nil {
		return line, fmt.Errorf("bad salary value %q", cell(3))
	}
	return line, nil
}

func parseFloatCell(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
}
