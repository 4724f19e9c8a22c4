package v1

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"fteboard/internal/diff"
	"fteboard/internal/importer"
	"fteboard/internal/model"
	"fteboard/internal/store"
)

// ListSnapshots 列出快照（可按办公室过滤）
// GET /api/snapshots?office=stockholm
func (h *Handler) ListSnapshots(c *gin.Context) {
	items, err := h.store.ListSnapshots(c.Query("office"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if items == nil {
		items = []store.SnapshotSummary{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// CreateSnapshotRequest 创建快照请求
type CreateSnapshotRequest struct {
	Name         string                `json:"name"`
	OfficeID     string                `json:"officeId"`
	SnapshotDate time.Time             `json:"snapshotDate"`
	Workforce    []model.WorkforceLine `json:"workforce"`
}

// CreateSnapshot 创建快照（创建后不可变）
// POST /api/snapshots
func (h *Handler) CreateSnapshot(c *gin.Context) {
	var req CreateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if req.Name == "" || req.OfficeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 name 或 officeId"})
		return
	}
	if req.SnapshotDate.IsZero() {
		req.SnapshotDate = time.Now().UTC()
	}

	snap := &model.PopulationSnapshot{
		Name:         req.Name,
		OfficeID:     req.OfficeID,
		SnapshotDate: req.SnapshotDate,
		Workforce:    req.Workforce,
	}
	id, err := h.store.CreateSnapshot(snap)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id, "metadata": snap.Metadata})
}

// GetSnapshot 读取完整快照
// GET /api/snapshots/:id
func (h *Handler) GetSnapshot(c *gin.Context) {
	snap, err := h.store.GetSnapshot(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "快照不存在"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// DeleteSnapshot 删除快照
// DELETE /api/snapshots/:id
func (h *Handler) DeleteSnapshot(c *gin.Context) {
	if err := h.store.DeleteSnapshot(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "快照不存在"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// CompareRequest 快照对比请求
type CompareRequest struct {
	BaselineID   string `json:"baselineId"`
	ComparisonID string `json:"comparisonId"`
}

// CompareSnapshots 对比两份快照
// POST /api/snapshots/compare
func (h *Handler) CompareSnapshots(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}

	baseline, err := h.store.GetSnapshot(req.BaselineID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "基线快照不存在"})
		return
	}
	comparison, err := h.store.GetSnapshot(req.ComparisonID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "对比快照不存在"})
		return
	}

	c.JSON(http.StatusOK, diff.Compare(baseline, comparison))
}

// ImportSnapshots 导入快照工作簿 (SSE 流式进度)
// POST /api/snapshots/import
func (h *Handler) ImportSnapshots(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的表单数据"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未找到上传文件"})
		return
	}
	uploadedFile := files[0]

	tempFilePath := filepath.Join(os.TempDir(), fmt.Sprintf("fteboard_import_%d_%s", time.Now().Unix(), uploadedFile.Filename))
	if err := c.SaveUploadedFile(uploadedFile, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "保存文件失败"})
		return
	}
	defer os.Remove(tempFilePath)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	coordinator := importer.NewCoordinator(h.store)
	progressChan := coordinator.Import(importer.ImportOptions{
		FilePath:     tempFilePath,
		OfficeID:     c.PostForm("officeId"),
		SnapshotName: c.PostForm("name"),
	})

	c.Stream(func(w io.Writer) bool {
		evt, ok := <-progressChan
		if !ok {
			return false
		}
		c.SSEvent("progress", evt)
		return true
	})
}
