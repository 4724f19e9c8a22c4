package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized   bool   `json:"initialized"`   // 是否已有快照数据
	SnapshotCount int    `json:"snapshotCount"` // 快照总数
	CurrentYear   int    `json:"currentYear"`   // 当前操作年度（0 = 未设置）
	DefaultOffice string `json:"defaultOffice"` // 默认办公室
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	count, err := h.store.CountSnapshots()
	if err != nil {
		count = 0
	}

	year, err := h.store.GetCurrentYear()
	if err != nil {
		year = 0
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:   count > 0,
		SnapshotCount: count,
		CurrentYear:   year,
		DefaultOffice: h.store.GetDefaultOffice(),
	})
}
