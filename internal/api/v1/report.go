package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fteboard/internal/calculator"
	"fteboard/internal/model"
)

// ReportRequest 报表请求。
// BaselineYear 非空时以该仿真年度作基线；否则使用配置的静态基线办公室。
type ReportRequest struct {
	Result       model.SimulationResult `json:"result"`
	Year         string                 `json:"year"`
	BaselineYear string                 `json:"baselineYear"`
}

// BuildReport 计算单年报表
// POST /api/report
func (h *Handler) BuildReport(c *gin.Context) {
	var req ReportRequest
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

	c.JSON(http.StatusOK, report)
}
