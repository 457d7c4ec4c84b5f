package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrDuplicateWord indicates the word already exists in the list.
var ErrDuplicateWord = errors.New("sensitive word already exists")

// WordStore manages the administrator-curated sensitive-word list. It also
// serves as the engine's word source (see ActiveWords).
type WordStore struct {
	DB *gorm.DB
}

func NewWordStore(db *gorm.DB) *WordStore {
	return &WordStore{DB: db}
}

// ActiveWords returns the flat list of enabled words. Implements
// wordlist.WordSource; must stay side-effect free.
func (s *WordStore) ActiveWords(ctx context.Context) ([]string, error) {
	var words []string
	err := s.DB.WithContext(ctx).Model(&SensitiveWord{}).
		Where("is_active = ?", true).
		Order("created_at desc").
		Pluck("word", &words).Error
	if err != nil {
		return nil, err
	}
	return words, nil
}

// ListWords returns words with optional category and active filters (nil
// means no filter).
func (s *WordStore) ListWords(ctx context.Context, category string, isActive *bool) ([]SensitiveWord, error) {
	q := s.DB.WithContext(ctx).Model(&SensitiveWord{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if isActive != nil {
		q = q.Where("is_active = ?", *isActive)
	}
	var out []SensitiveWord
	if err := q.Order("created_at desc").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *WordStore) GetWord(ctx context.Context, id string) (*SensitiveWord, error) {
	var word SensitiveWord
	if err := s.DB.WithContext(ctx).First(&word, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &word, nil
}

func (s *WordStore) CreateWord(ctx context.Context, word, category string) (*SensitiveWord, error) {
	rec := SensitiveWord{
		ID:       NewID(),
		Word:     word,
		Category: category,
		IsActive: true,
	}
	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWord, word)
		}
		return nil, err
	}
	return &rec, nil
}

// UpdateWord patches word text, category, or active flag; nil fields are
// left unchanged.
func (s *WordStore) UpdateWord(ctx context.Context, id string, word, category *string, isActive *bool) (*SensitiveWord, error) {
	rec, err := s.GetWord(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if word != nil {
		updates["word"] = *word
	}
	if category != nil {
		updates["category"] = *category
	}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if len(updates) == 0 {
		return rec, nil
	}

	if err := s.DB.WithContext(ctx).Model(rec).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateWord, updates["word"])
		}
		return nil, err
	}
	return s.GetWord(ctx, id)
}

func (s *WordStore) DeleteWord(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Delete(&SensitiveWord{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
