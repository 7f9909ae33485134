package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/kilo-recipes/recipe-api/backend/internal/database"
	"github.com/kilo-recipes/recipe-api/backend/internal/models"
)

type namedPtr[T any] interface {
	*T
	models.Named
}

// AttributeService manages one of the per-user name lists (tags or
// ingredients). Every query is scoped to the owner.
type AttributeService[T models.Attribute, PT namedPtr[T]] struct {
	db *gorm.DB
}

// NewAttributeService creates a service for T, e.g. NewAttributeService[models.Tag](db)
func NewAttributeService[T models.Attribute, PT namedPtr[T]](db *gorm.DB) *AttributeService[T, PT] {
	return &AttributeService[T, PT]{db: db}
}

// Label is the singular noun used in messages ("tag", "ingredient")
func (s *AttributeService[T, PT]) Label() string {
	return attributeLabel[T, PT]()
}

// List returns the owner's rows in reverse alphabetical order. With
// assignedOnly set, only rows attached to at least one recipe are returned.
func (s *AttributeService[T, PT]) List(ctx context.Context, userID uint, assignedOnly bool) ([]T, error) {
	db := s.db.WithContext(ctx)
	q := db.Where("user_id = ?", userID)
	if assignedOnly {
		table, column := PT(new(T)).JoinTable()
		q = q.Where("id IN (?)", db.Table(table).Select(column))
	}

	var items []T
	if err := q.Order("name DESC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", s.Label(), err)
	}
	return items, nil
}

// Get loads one owned row; rows of other users are reported as ErrNotFound.
func (s *AttributeService[T, PT]) Get(ctx context.Context, userID, id uint) (*T, error) {
	return s.get(s.db.WithContext(ctx), userID, id)
}

func (s *AttributeService[T, PT]) get(db *gorm.DB, userID, id uint) (*T, error) {
	var item T
	if err := db.Where("user_id = ?", userID).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load %s: %w", s.Label(), err)
	}
	return &item, nil
}

// Create adds a row for the owner
func (s *AttributeService[T, PT]) Create(ctx context.Context, userID uint, name string) (*T, error) {
	name, err := cleanName("name", name)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if err := s.checkUnique(db, userID, name, 0); err != nil {
		return nil, err
	}

	var item T
	p := PT(&item)
	p.SetOwner(userID)
	p.SetName(name)
	if err := db.Create(&item).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, s.duplicateError()
		}
		return nil, fmt.Errorf("failed to create %s: %w", s.Label(), err)
	}
	return &item, nil
}

// Update renames an owned row; a nil name leaves it unchanged.
func (s *AttributeService[T, PT]) Update(ctx context.Context, userID, id uint, name *string) (*T, error) {
	var item *T
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if item, err = s.get(tx, userID, id); err != nil {
			return err
		}
		if name == nil {
			return nil
		}

		cleaned, err := cleanName("name", *name)
		if err != nil {
			return err
		}
		if err := s.checkUnique(tx, userID, cleaned, id); err != nil {
			return err
		}

		PT(item).SetName(cleaned)
		if err := tx.Save(item).Error; err != nil {
			if database.IsUniqueViolation(err) {
				return s.duplicateError()
			}
			return fmt.Errorf("failed to update %s: %w", s.Label(), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an owned row and detaches it from every recipe
func (s *AttributeService[T, PT]) Delete(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.get(tx, userID, id)
		if err != nil {
			return err
		}

		table, column := PT(item).JoinTable()
		if err := tx.Exec("DELETE FROM "+table+" WHERE "+column+" = ?", id).Error; err != nil {
			return fmt.Errorf("failed to detach %s: %w", s.Label(), err)
		}
		if err := tx.Delete(item).Error; err != nil {
			return fmt.Errorf("failed to delete %s: %w", s.Label(), err)
		}
		return nil
	})
}

func (s *AttributeService[T, PT]) checkUnique(db *gorm.DB, userID uint, name string, exceptID uint) error {
	var count int64
	q := db.Model(new(T)).Where("user_id = ? AND name = ?", userID, name)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check %s name: %w", s.Label(), err)
	}
	if count > 0 {
		return s.duplicateError()
	}
	return nil
}

func (s *AttributeService[T, PT]) duplicateError() error {
	return NewValidationError("name", fmt.Sprintf("%s with this name already exists.", s.Label()))
}

func attributeLabel[T models.Attribute, PT namedPtr[T]]() string {
	_, column := PT(new(T)).JoinTable()
	return strings.TrimSuffix(column, "_id")
}

func cleanName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", NewValidationError(field, msgBlank)
	case utf8.RuneCountInString(name) > 255:
		return "", NewValidationError(field, msgTooLong)
	}
	return name, nil
}

// resolveNames maps names to the owner's rows, creating the missing ones.
// Duplicate names resolve once; the result keeps first-seen order.
func resolveNames[T models.Attribute, PT namedPtr[T]](tx *gorm.DB, userID uint, field string, names []string) ([]T, error) {
	items := make([]T, 0, len(names))
	seen := make(map[string]struct{}, len(names))

	for _, raw := range names {
		name, err := cleanName(field, raw)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		var item T
		err = tx.Where("user_id = ? AND name = ?", userID, name).First(&item).Error
		switch {
		case err == nil:
		case errors.Is(err, gorm.ErrRecordNotFound):
			p := PT(&item)
			p.SetOwner(userID)
			p.SetName(name)
			if err := tx.Create(&item).Error; err != nil {
				return nil, fmt.Errorf("failed to create %s %q: %w", attributeLabel[T, PT](), name, err)
			}
		default:
			return nil, fmt.Errorf("failed to resolve %s %q: %w", attributeLabel[T, PT](), name, err)
		}
		items = append(items, item)
	}
	return items, nil
}
