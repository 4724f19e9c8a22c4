package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fteboard/internal/calculator"
	"fteboard/internal/diff"
	"fteboard/internal/model"
)

// ExportRequest 导出请求：报表输入 + 可选的快照对比
type ExportRequest struct {
	Result       model.SimulationResult `json:"result"`
	Year         string                 `json:"year"`
	BaselineYear string                 `json:"baselineYear"`
	BaselineID   string                 `json:"baselineId"`
	ComparisonID string                 `json:"comparisonId"`
}

// Export 导出报表工作簿
// POST /api/export
func (h *Handler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if req.Year == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 year 参数"})
		return
	}

	report := h.calc.BuildReport(req.Result, calculator.ReportOptions{
		Year:            req.Year,
		BaselineYear:    req.BaselineYear,
		BaselineOffices: h.baselineOffices,
	})

	var comparison *diff.Result
	if req.BaselineID != "" && req.ComparisonID != "" {
		baseline, err := h.store.GetSnapshot(req.BaselineID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "基线快照不存在"})
			return
		}
		cmp, err := h.store.GetSnapshot(req.ComparisonID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "对比快照不存在"})
			return
		}
		res := diff.Compare(baseline, cmp)
		comparison = &res
	}

	f, err := h.exporter.BuildReportWorkbook(report, comparison)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("导出失败: %v", err)})
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("fteboard_report_%s_%s.xlsx", req.Year, time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "写出工作簿失败"})
		return
	}
}
