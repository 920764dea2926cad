// prepnotes/sources/psql/dao/dao.note.go
package dao

import (
	"context"

	"gorm.io/gorm"

	"prepnotes/prepnotes/sources/psql/models"
)

type NoteDAO struct {
	DB *gorm.DB
}

func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{DB: db}
}

// CategoryCount is one row of the per-category stats aggregate.
type CategoryCount struct {
	CategoryID   int    `json:"category_id"`
	CategoryName string `json:"category_name"`
	CategorySlug string `json:"category_slug"`
	CategoryIcon string `json:"category_icon"`
	Color        string `json:"category_color"`
	Count        int64  `json:"count"`
}

func (dao *NoteDAO) CreateNote(ctx context.Context, note *models.Note) error {
	if err := dao.DB.WithContext(ctx).Create(note).Error; err != nil {
		return err
	}
	return dao.DB.WithContext(ctx).Preload("Category").First(note, note.ID).Error
}

// GetNoteByID fetches a note scoped to its owner. A miss returns (nil, nil)
// whether the row is absent or belongs to another user.
func (dao *NoteDAO) GetNoteByID(ctx context.Context, id int, ownerID string) (*models.Note, error) {
	var note models.Note
	err := dao.DB.WithContext(ctx).Preload("Category").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&note).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// GetAllNotesByUser lists the owner's notes, pinned first, most recently
// updated first. categoryID of 0 means no category filter.
func (dao *NoteDAO) GetAllNotesByUser(ctx context.Context, ownerID string, categoryID int) ([]models.Note, error) {
	q := dao.DB.WithContext(ctx).Preload("Category").
		Where("user_id = ?", ownerID)
	if categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	var notes []models.Note
	err := q.Order("is_pinned desc").Order("updated_at desc").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote applies a partial field merge scoped by (id, owner) and
// reports how many rows matched. GORM refreshes updated_at on the write.
func (dao *NoteDAO) UpdateNote(ctx context.Context, id int, ownerID string, updates map[string]interface{}) (int64, error) {
	res := dao.DB.WithContext(ctx).Model(&models.Note{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// DeleteNote removes at most one row; a non-owner's delete matches zero.
func (dao *NoteDAO) DeleteNote(ctx context.Context, id int, ownerID string) (int64, error) {
	res := dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Note{})
	return res.RowsAffected, res.Error
}

// TogglePin flips the pinned flag. Returns (nil, nil) when the note is
// missing or not owned by ownerID.
func (dao *NoteDAO) TogglePin(ctx context.Context, id int, ownerID string) (*models.Note, error) {
	var note models.Note
	err := dao.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&note).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = dao.DB.WithContext(ctx).Model(&note).
		Updates(map[string]interface{}{"is_pinned": !note.IsPinned}).Error
	if err != nil {
		return nil, err
	}
	return dao.GetNoteByID(ctx, id, ownerID)
}

// ListGroup returns the owner's notes sharing one pinned flag, in manual
// order.
func (dao *NoteDAO) ListGroup(ctx context.Context, ownerID string, pinned bool) ([]models.Note, error) {
	var notes []models.Note
	err := dao.DB.WithContext(ctx).Preload("Category").
		Where("user_id = ? AND is_pinned = ?", ownerID, pinned).
		Order("sort_order asc").Order("updated_at desc").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Reorder moves a note to position within its pinned group and rewrites
// the group's sort orders as a dense 0..N-1 sequence. The whole rewrite
// runs in one transaction so a crash can't leave a half-reordered group.
// Only the moved note gets a fresh updated_at; rewriting it on every
// sibling would shuffle the default listing on each drag.
func (dao *NoteDAO) Reorder(ctx context.Context, ownerID string, noteID int, position int) ([]models.Note, error) {
	var group []models.Note
	err := dao.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var moved models.Note
		if err := tx.Where("id = ? AND user_id = ?", noteID, ownerID).First(&moved).Error; err != nil {
			return err
		}

		if err := tx.Preload("Category").
			Where("user_id = ? AND is_pinned = ?", ownerID, moved.IsPinned).
			Order("sort_order asc").Order("updated_at desc").
			Find(&group).Error; err != nil {
			return err
		}

		idx := -1
		for i := range group {
			if group[i].ID == moved.ID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return gorm.ErrRecordNotFound
		}
		movedNote := group[idx]
		group = append(group[:idx], group[idx+1:]...)
		if position < 0 {
			position = 0
		}
		if position > len(group) {
			position = len(group)
		}
		rest := append([]models.Note{movedNote}, group[position:]...)
		group = append(group[:position], rest...)

		for i := range group {
			scoped := tx.Model(&models.Note{}).Where("id = ? AND user_id = ?", group[i].ID, ownerID)
			if group[i].ID == moved.ID {
				if err := scoped.Updates(map[string]interface{}{"sort_order": i}).Error; err != nil {
					return err
				}
			} else {
				if err := scoped.UpdateColumn("sort_order", i).Error; err != nil {
					return err
				}
			}
			group[i].SortOrder = i
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// SearchNotes runs a case-insensitive substring match over title and
// content with pagination, scoped to the owner.
func (dao *NoteDAO) SearchNotes(ctx context.Context, ownerID string, term string, page, pageSize int) ([]models.Note, int64, error) {
	pattern := "%" + term + "%"
	matched := func() *gorm.DB {
		return dao.DB.WithContext(ctx).Model(&models.Note{}).
			Where("user_id = ?", ownerID).
			Where("lower(title) LIKE lower(?) OR lower(content) LIKE lower(?)", pattern, pattern)
	}

	var total int64
	if err := matched().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notes []models.Note
	err := matched().Preload("Category").
		Order("is_pinned desc").Order("updated_at desc").
		Limit(pageSize).Offset((page - 1) * pageSize).
		Find(&notes).Error
	if err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// StatsByCategory counts the owner's notes per category.
func (dao *NoteDAO) StatsByCategory(ctx context.Context, ownerID string) ([]CategoryCount, error) {
	var stats []CategoryCount
	err := dao.DB.WithContext(ctx).Model(&models.Note{}).
		Select("notes.category_id as category_id, categories.name as category_name, categories.slug as category_slug, categories.icon as category_icon, categories.color as color, count(notes.id) as count").
		Joins("LEFT JOIN categories ON categories.id = notes.category_id").
		Where("notes.user_id = ?", ownerID).
		Group("notes.category_id, categories.name, categories.slug, categories.icon, categories.color").
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
