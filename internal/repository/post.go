package repository

import (
	"context"
	"errors"

	"bloom/internal/cache"
	"bloom/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Errors surfaced by the resonance operation. The service layer translates
// them into the API error taxonomy.
var (
	ErrPostNotFound     = errors.New("post not found")
	ErrAlreadyResonated = errors.New("already resonated")
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, limit, offset int, tag string) ([]*models.Post, error)
	Count(ctx context.Context, tag string) (int64, error)
	AddResonance(ctx context.Context, userID, postID uint) (int, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// withAssociations preloads everything a post response needs: the author,
// the ordered tags, and comments with their authors.
func (r *postRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User")
}

// tagFilter narrows the query to posts carrying the given tag. The filter
// value is matched exactly against stored (normalized) tag names.
func tagFilter(db *gorm.DB, tag string) *gorm.DB {
	if tag == "" {
		return db
	}
	return db.Where(
		"EXISTS (SELECT 1 FROM post_tags WHERE post_tags.post_id = posts.id AND post_tags.name = ?)",
		tag,
	)
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	// Tag rows are created with the post in a single transaction via the
	// association.
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidateFeed(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		if err := r.withAssociations(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}
		post.Resolve()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int, tag string) ([]*models.Post, error) {
	var posts []*models.Post
	err := tagFilter(r.withAssociations(r.db.WithContext(ctx)), tag).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		p.Resolve()
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, tag string) (int64, error) {
	var total int64
	err := tagFilter(r.db.WithContext(ctx).Model(&models.Post{}), tag).
		Count(&total).Error
	return total, err
}

// AddResonance records a one-time reaction and bumps the post counter. The
// whole read-check-write sequence runs in a single transaction: the
// membership row is inserted with ON CONFLICT DO NOTHING, and the counter
// is only incremented when that insert actually landed. Two concurrent
// attempts by the same user therefore cannot both increment - the second
// insert resolves to zero affected rows and the transaction reports
// ErrAlreadyResonated.
func (r *postRepository) AddResonance(ctx context.Context, userID, postID uint) (int, error) {
	var resonance int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		membership := models.Resonance{UserID: userID, PostID: postID}
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoNothing: true,
		}).Create(&membership)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyResonated
		}

		if err := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn("resonance", gorm.Expr("resonance + 1")).Error; err != nil {
			return err
		}

		return tx.Model(&models.Post{}).
			Select("resonance").
			Where("id = ?", postID).
			Scan(&resonance).Error
	})
	if err != nil {
		return 0, err
	}

	cache.InvalidatePost(ctx, postID)
	cache.InvalidateFeed(ctx)

	return resonance, nil
}
