package services

import (
	"errors"
	"expense-backend/internal/models"

	"gorm.io/gorm"
)

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) GetTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Order("tag_id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) GetActiveTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Where("is_active = ?", true).Order("tag_id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) GetSystemTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.Where("is_system = ?", true).Order("tag_id").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) GetTagByID(tagID uint) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.First(&tag, "tag_id = ?", tagID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetUserTags 返回用户自建的标签
func (s *TagService) GetUserTags(userID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Where("created_by = ? AND is_system = ?", userID, false).Order("tag_id").Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// GetAvailableTags 通过 user_available_tags 视图返回用户可用的标签（系统标签 + 本人标签）
func (s *TagService) GetAvailableTags(userID uint) ([]models.AvailableTag, error) {
	var tags []models.AvailableTag
	err := s.db.Table("user_available_tags").
		Where("user_id = ?", userID).
		Order("tag_id").
		Scan(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) CreateTag(userID uint, req *models.TagCreateRequest) (*models.Tag, error) {
	var count int64
	if err := s.db.Model(&models.Tag{}).Where("created_by = ? AND name = ? AND is_active = ?", userID, req.Name, true).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, validationError("标签名称已存在")
	}

	tag := models.Tag{
		Name:      req.Name,
		Color:     &req.Color,
		CreatedBy: &userID,
		IsSystem:  false,
		IsActive:  true,
	}

	if err := s.db.Create(&tag).Error; err != nil {
		return nil, err
	}

	return &tag, nil
}

// UpdateTag 把所有权条件放进 UPDATE 的 WHERE 里，单条语句完成检查和写入
func (s *TagService) UpdateTag(tagID, userID uint, req *models.TagUpdateRequest) (*models.Tag, error) {
	result := s.db.Model(&models.Tag{}).
		Where("tag_id = ? AND created_by = ? AND is_system = ?", tagID, userID, false).
		Updates(map[string]interface{}{
			"name":  req.Name,
			"color": req.Color,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, s.mutationFailure(tagID)
	}

	var tag models.Tag
	if err := s.db.First(&tag, "tag_id = ?", tagID).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// DeactivateTag 逻辑删除，系统标签和他人标签都会命中零行
func (s *TagService) DeactivateTag(tagID, userID uint) (*models.Tag, error) {
	result := s.db.Model(&models.Tag{}).
		Where("tag_id = ? AND created_by = ? AND is_system = ?", tagID, userID, false).
		Update("is_active", false)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, s.mutationFailure(tagID)
	}

	var tag models.Tag
	if err := s.db.First(&tag, "tag_id = ?", tagID).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// 零行更新之后区分 404 和 403
func (s *TagService) mutationFailure(tagID uint) error {
	var count int64
	if err := s.db.Model(&models.Tag{}).Where("tag_id = ?", tagID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrForbidden
}

// AddTagToFavorites 返回 false 表示标签已在收藏中
func (s *TagService) AddTagToFavorites(userID, tagID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Tag{}).Where("tag_id = ? AND is_active = ?", tagID, true).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, ErrNotFound
	}

	if err := s.db.Model(&models.UserFavoriteTag{}).Where("user_id = ? AND tag_id = ?", userID, tagID).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	err := s.db.Create(&models.UserFavoriteTag{UserID: userID, TagID: tagID}).Error
	if err != nil {
		// 并发插入撞到唯一约束视为已收藏
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *TagService) RemoveTagFromFavorites(userID, tagID uint) (bool, error) {
	result := s.db.Where("user_id = ? AND tag_id = ?", userID, tagID).Delete(&models.UserFavoriteTag{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *TagService) IsTagFavorite(userID, tagID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.UserFavoriteTag{}).Where("user_id = ? AND tag_id = ?", userID, tagID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *TagService) GetFavoriteTags(userID uint) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Table("tags").
		Joins("JOIN user_favorite_tags uft ON tags.tag_id = uft.tag_id").
		Where("uft.user_id = ? AND tags.is_active = ?", userID, true).
		Order("tags.tag_id").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
