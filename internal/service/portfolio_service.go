package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/lvclicks/internal/db"
	"gorm.io/gorm"
)

var (
	ErrImageNotFound     = errors.New("portfolio image not found")
	ErrImageDataInvalid  = errors.New("image data is not a supported image")
	ErrCategoryFull      = errors.New("portfolio category is full")
	ErrImmutableCategory = errors.New("portfolio category cannot be changed")
	ErrStoreUnavailable  = errors.New("portfolio store unavailable")
)

// MaxImagesPerCategory 限制单个分类可容纳的图片数量。
const MaxImagesPerCategory = 20

// PortfolioService owns the catalog of portfolio images. It enforces the
// per-category capacity cap and keeps at most one landing image per category.
type PortfolioService struct {
	db    *gorm.DB
	media MediaStore

	// one lock per category so the clear-then-set landing sequence and the
	// capacity check stay race free without serializing other categories
	locks map[Category]*sync.Mutex
}

// PortfolioFilter describes filters for listing portfolio images.
type PortfolioFilter struct {
	Category    Category
	LandingOnly bool
}

// UploadInput carries an upload request into the catalog.
type UploadInput struct {
	Data          []byte
	Category      string
	IsLandingPage bool
}

// UpdateInput carries the mutable fields of a portfolio image. Nil pointers
// leave the corresponding field untouched. A differing Category is rejected.
type UpdateInput struct {
	IsLandingPage *bool
	SortOrder     *int
	Category      string
}

// NewPortfolioService creates a PortfolioService backed by gdb and media.
func NewPortfolioService(gdb *gorm.DB, media MediaStore) *PortfolioService {
	locks := make(map[Category]*sync.Mutex, len(Categories))
	for _, category := range Categories {
		locks[category] = &sync.Mutex{}
	}
	return &PortfolioService{db: gdb, media: media, locks: locks}
}

// List returns portfolio images matching the filter, ordered for display.
func (s *PortfolioService) List(ctx context.Context, filter PortfolioFilter) ([]db.PortfolioImage, error) {
	query := s.db.WithContext(ctx).Model(&db.PortfolioImage{})
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.LandingOnly {
		query = query.Where("is_landing_page = ?", true)
	}

	var items []db.PortfolioImage
	if err := query.
		Order("sort_order asc").
		Order("uploaded_at desc").
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

// Get fetches a portfolio image by id.
func (s *PortfolioService) Get(ctx context.Context, id uint) (*db.PortfolioImage, error) {
	var item db.PortfolioImage
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, storeErr(err)
	}
	return &item, nil
}

// CategoryCounts returns the number of stored images per category.
func (s *PortfolioService) CategoryCounts(ctx context.Context) (map[Category]int64, error) {
	type row struct {
		Category string
		Total    int64
	}

	var rows []row
	if err := s.db.WithContext(ctx).Model(&db.PortfolioImage{}).
		Select("category, COUNT(*) as total").
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, storeErr(err)
	}

	counts := make(map[Category]int64, len(Categories))
	for _, category := range Categories {
		counts[category] = 0
	}
	for _, r := range rows {
		counts[Category(r.Category)] = r.Total
	}
	return counts, nil
}

// Upload validates and stores a new portfolio image.
//
// The capacity check runs before the media store write so a full category
// never produces an orphaned blob. If the process dies between the media
// write and the record insert the blob is orphaned; that window is accepted
// and not compensated.
func (s *PortfolioService) Upload(ctx context.Context, input UploadInput) (*db.PortfolioImage, error) {
	category, err := ParseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	width, height, err := decodeImageBounds(input.Data)
	if err != nil {
		return nil, err
	}

	lock := s.locks[category]
	lock.Lock()
	defer lock.Unlock()

	count, err := s.countCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if count >= MaxImagesPerCategory {
		return nil, fmt.Errorf("%w: %s already holds %d images", ErrCategoryFull, category, MaxImagesPerCategory)
	}

	stored, err := s.media.Store(ctx, input.Data, "lvclicks/"+category.String())
	if err != nil {
		return nil, mediaErr(err)
	}

	item := db.PortfolioImage{
		URL:           stored.URL,
		MediaObjectID: stored.ObjectID,
		Category:      category.String(),
		IsLandingPage: input.IsLandingPage,
		Width:         width,
		Height:        height,
		UploadedAt:    time.Now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先撤销同分类下原有的首页标记，再写入新记录，保证任一时刻至多一张首页图
		if input.IsLandingPage {
			if err := clearLandingFlag(tx, category); err != nil {
				return err
			}
		}

		var maxOrder int
		if err := tx.Model(&db.PortfolioImage{}).
			Where("category = ?", category.String()).
			Select("COALESCE(MAX(sort_order), -1)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}
		item.SortOrder = maxOrder + 1

		return tx.Create(&item).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return &item, nil
}

// Update mutates the landing flag and/or sort order of an image.
func (s *PortfolioService) Update(ctx context.Context, id uint, input UpdateInput) (*db.PortfolioImage, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw := input.Category; raw != "" {
		requested, err := ParseCategory(raw)
		if err != nil || requested.String() != item.Category {
			return nil, ErrImmutableCategory
		}
	}

	category := Category(item.Category)
	lock := s.locks[category]
	if lock != nil {
		lock.Lock()
		defer lock.Unlock()
	}

	// 锁内重新读取：初次读取发生在锁外，期间同分类的其他更新可能已提交，
	// 写回过期快照会让首页标记死而复生
	var fresh db.PortfolioImage
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&fresh, id).Error; err != nil {
			return err
		}

		if input.IsLandingPage != nil {
			if *input.IsLandingPage {
				if err := clearLandingFlag(tx, category); err != nil {
					return err
				}
			}
			fresh.IsLandingPage = *input.IsLandingPage
		}
		if input.SortOrder != nil {
			fresh.SortOrder = *input.SortOrder
		}
		return tx.Save(&fresh).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, storeErr(err)
	}

	return &fresh, nil
}

// Delete removes an image from the catalog and the media store.
//
// The media object is removed first: if that fails the record stays intact and
// the call can be retried, so the catalog never points at bytes it silently
// lost the only reference to.
func (s *PortfolioService) Delete(ctx context.Context, id uint) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.media.Remove(ctx, item.MediaObjectID); err != nil {
		return mediaErr(err)
	}

	if err := s.db.WithContext(ctx).Unscoped().Delete(item).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *PortfolioService) countCategory(ctx context.Context, category Category) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.PortfolioImage{}).
		Where("category = ?", category.String()).
		Count(&count).Error; err != nil {
		return 0, storeErr(err)
	}
	return count, nil
}

func clearLandingFlag(tx *gorm.DB, category Category) error {
	return tx.Model(&db.PortfolioImage{}).
		Where("category = ? AND is_landing_page = ?", category.String(), true).
		Update("is_landing_page", false).Error
}

func decodeImageBounds(data []byte) (int, int, error) {
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, ErrImageDataInvalid
	}
	return config.Width, config.Height, nil
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func mediaErr(err error) error {
	if errors.Is(err, ErrMediaStore) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrMediaStore, err)
}
