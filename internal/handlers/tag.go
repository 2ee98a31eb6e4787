package handlers

import (
	"expense-backend/internal/models"
	"expense-backend/internal/services"
	"expense-backend/internal/utils"
	appvalidator "expense-backend/pkg/validator"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TagHandler struct {
	tagService *services.TagService
	validator  *validator.Validate
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		validator:  appvalidator.GetValidator(),
	}
}

func (h *TagHandler) GetTags(c *gin.Context) {
	tags, err := h.tagService.GetTags()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, tags)
}

func (h *TagHandler) GetActiveTags(c *gin.Context) {
	tags, err := h.tagService.GetActiveTags()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, tags)
}

func (h *TagHandler) GetSystemTags(c *gin.Context) {
	tags, err := h.tagService.GetSystemTags()
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, tags)
}

func (h *TagHandler) GetTag(c *gin.Context) {
	tagID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的标签ID")
		return
	}

	tag, err := h.tagService.GetTagByID(uint(tagID))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, tag)
}

func (h *TagHandler) GetUserTags(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	tags, err := h.tagService.GetUserTags(uint(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, tags)
}

func (h *TagHandler) GetAvailableTags(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的用户ID")
		return
	}

	tags, err := h.tagService.GetAvailableTags(uint(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, tags)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	userID := currentUserID(c)

	var req models.TagCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	tag, err := h.tagService.CreateTag(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Created(c, "创建成功", tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	userID := currentUserID(c)

	tagID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的标签ID")
		return
	}

	var req models.TagUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	tag, err := h.tagService.UpdateTag(uint(tagID), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "更新成功", tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	userID := currentUserID(c)

	tagID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的标签ID")
		return
	}

	tag, err := h.tagService.DeactivateTag(uint(tagID), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessWithMessage(c, "标签已停用", tag)
}

func (h *TagHandler) AddFavorite(c *gin.Context) {
	userID := currentUserID(c)

	tagID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的标签ID")
		return
	}

	added, err := h.tagService.AddTagToFavorites(userID, uint(tagID))
	if err != nil {
		respondError(c, err)
		return
	}

	if added {
		utils.SuccessWithMessage(c, "已加入收藏", nil)
	} else {
		utils.SuccessWithMessage(c, "标签已在收藏中", nil)
	}
}

func (h *TagHandler) RemoveFavorite(c *gin.Context) {
	userID := currentUserID(c)

	tagID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的标签ID")
		return
	}

	removed, err := h.tagService.RemoveTagFromFavorites(userID, uint(tagID))
	if err != nil {
		respondError(c, err)
		return
	}

	if removed {
		utils.SuccessWithMessage(c, "已取消收藏", nil)
	} else {
		utils.SuccessWithMessage(c, "标签不在收藏中", nil)
	}
}

func (h *TagHandler) CheckFavorite(c *gin.Context) {
	userID := currentUserID(c)

	tagID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的标签ID")
		return
	}

	isFavorite, err := h.tagService.IsTagFavorite(userID, uint(tagID))
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, gin.H{"is_favorite": isFavorite})
}

func (h *TagHandler) GetFavorites(c *gin.Context) {
	userID := currentUserID(c)

	tags, err := h.tagService.GetFavoriteTags(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.Success(c, tags)
}
