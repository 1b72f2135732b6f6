package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authhttp "github.com/wyfcoding/khamyang/internal/auth/interfaces/http"
	"github.com/wyfcoding/khamyang/internal/dictionary/application"
	"github.com/wyfcoding/khamyang/pkg/errs"
	"github.com/wyfcoding/khamyang/pkg/logger"
	"github.com/wyfcoding/khamyang/pkg/metrics"
	"github.com/wyfcoding/khamyang/pkg/upload"
)

// DictionaryHandler 词典 HTTP 处理器。
// 列表接口对所有访问者开放，写接口由应用层校验管理员身份。
type DictionaryHandler struct {
	command *application.DictionaryCommandService
	query   *application.DictionaryQueryService
	uploads *upload.Store
	metrics *metrics.Metrics
}

func NewDictionaryHandler(
	command *application.DictionaryCommandService,
	query *application.DictionaryQueryService,
	uploads *upload.Store,
	m *metrics.Metrics,
) *DictionaryHandler {
	return &DictionaryHandler{command: command, query: query, uploads: uploads, metrics: m}
}

// RegisterRoutes 注册词典相关路由
func (h *DictionaryHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/words", h.ListWords)
	r.POST("/api/words", h.AddWord)
	r.PUT("/api/words/:id", h.UpdateWord)
	r.DELETE("/api/words/:id", h.DeleteWord)

	r.GET("/api/songs", h.ListSongs)
	r.POST("/api/songs", h.AddSong)
	r.PUT("/api/songs/:id", h.UpdateSong)
	r.DELETE("/api/songs/:id", h.DeleteSong)
}

type wordRequest struct {
	TaiKhamyang string `json:"tai_khamyang" form:"tai_khamyang"`
	English     string `json:"english" form:"english"`
	Assamese    string `json:"assamese" form:"assamese"`
}

type songRequest struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
}

// ListWords 返回词条列表。保持原始客户端契约：裸 JSON 数组，出错时返回空数组。
func (h *DictionaryHandler) ListWords(c *gin.Context) {
	words, err := h.query.ListWords(c.Request.Context(), c.Query("search"), c.Query("sort_by"))
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list words", "error", err)
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, words)
}

// AddWord 创建词条，支持 JSON 与 multipart 表单两种提交方式
func (h *DictionaryHandler) AddWord(c *gin.Context) {
	var req wordRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	audioPath, ok := h.saveAudio(c)
	if !ok {
		return
	}

	word, err := h.command.AddWord(c.Request.Context(), *authhttp.GetAuthContext(c), application.SaveWordCommand{
		TaiKhamyang: req.TaiKhamyang,
		English:     req.English,
		Assamese:    req.Assamese,
		AudioPath:   audioPath,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": word.ID})
}

// UpdateWord 更新词条
func (h *DictionaryHandler) UpdateWord(c *gin.Context) {
	var req wordRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	audioPath, ok := h.saveAudio(c)
	if !ok {
		return
	}

	_, err := h.command.UpdateWord(c.Request.Context(), *authhttp.GetAuthContext(c), c.Param("id"), application.SaveWordCommand{
		TaiKhamyang: req.TaiKhamyang,
		English:     req.English,
		Assamese:    req.Assamese,
		AudioPath:   audioPath,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Word updated successfully"})
}

// DeleteWord 删除词条
func (h *DictionaryHandler) DeleteWord(c *gin.Context) {
	if err := h.command.DeleteWord(c.Request.Context(), *authhttp.GetAuthContext(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListSongs 返回歌曲列表，契约同 ListWords
func (h *DictionaryHandler) ListSongs(c *gin.Context) {
	songs, err := h.query.ListSongs(c.Request.Context(), c.Query("search"), c.Query("sort_by"))
	if err != nil {
		logger.Error(c.Request.Context(), "failed to list songs", "error", err)
		c.JSON(http.StatusOK, []any{})
		return
	}
	c.JSON(http.StatusOK, songs)
}

// AddSong 创建歌曲
func (h *DictionaryHandler) AddSong(c *gin.Context) {
	var req songRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	filePath, ok := h.saveAudio(c)
	if !ok {
		return
	}

	song, err := h.command.AddSong(c.Request.Context(), *authhttp.GetAuthContext(c), application.SaveSongCommand{
		Title:       req.Title,
		Description: req.Description,
		FilePath:    filePath,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": song.ID})
}

// UpdateSong 更新歌曲
func (h *DictionaryHandler) UpdateSong(c *gin.Context) {
	var req songRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}

	filePath, ok := h.saveAudio(c)
	if !ok {
		return
	}

	_, err := h.command.UpdateSong(c.Request.Context(), *authhttp.GetAuthContext(c), c.Param("id"), application.SaveSongCommand{
		Title:       req.Title,
		Description: req.Description,
		FilePath:    filePath,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Song updated successfully"})
}

// DeleteSong 删除歌曲
func (h *DictionaryHandler) DeleteSong(c *gin.Context) {
	if err := h.command.DeleteSong(c.Request.Context(), *authhttp.GetAuthContext(c), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// saveAudio 处理 multipart 中可选的 audio 文件。
// 返回存储后的文件名；未上传返回空串。写入失败时已响应 500。
func (h *DictionaryHandler) saveAudio(c *gin.Context) (string, bool) {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return "", true
	}

	header, err := c.FormFile("audio")
	if err != nil {
		// 没有附带音频文件
		return "", true
	}

	file, err := header.Open()
	if err != nil {
		h.fail(c, errs.Store(err))
		return "", false
	}
	defer file.Close()

	stored, err := h.uploads.Save(header.Filename, file)
	if err != nil {
		h.fail(c, errs.Store(err))
		return "", false
	}

	if h.metrics != nil {
		h.metrics.AudioUploadsTotal.Inc()
	}
	return stored, true
}

func (h *DictionaryHandler) fail(c *gin.Context, err error) {
	status := errs.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "dictionary request failed", "error", err)
	}
	c.JSON(status, gin.H{"error": errs.MessageOf(err)})
}
