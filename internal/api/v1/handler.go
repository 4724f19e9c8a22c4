package v1

import (
	"github.com/gin-gonic/gin"

	"fteboard/internal/calculator"
	"fteboard/internal/exporter"
	"fteboard/internal/store"
)

// Handler V1 API 处理器
type Handler struct {
	store           *store.Store
	calc            *calculator.Calculator
	baselineOffices []calculator.BaselineOffice
	exporter        *exporter.Exporter
}

// NewHandler 创建 V1 API 处理器
func NewHandler(store *store.Store, calc *calculator.Calculator, baselineOffices []calculator.BaselineOffice) *Handler {
	return &Handler{
		store:           store,
		calc:            calc,
		baselineOffices: baselineOffices,
		exporter:        exporter.NewExporter(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 报表计算（仿真结果 → KPI + 资历分布）
	router.POST("/report", h.BuildReport)

	// 快照管理
	router.GET("/snapshots", h.ListSnapshots)
	router.POST("/snapshots", h.CreateSnapshot)
	router.GET("/snapshots/:id", h.GetSnapshot)
	router.DELETE("/snapshots/:id", h.DeleteSnapshot)
	router.POST("/snapshots/compare", h.CompareSnapshots)
	router.POST("/snapshots/import", h.ImportSnapshots)

	// 数据导出
	router.POST("/export", h.Export)
}
