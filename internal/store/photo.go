package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/style"
)

// ErrInvalidPhoto is returned for photos that cannot be added to the catalog.
var ErrInvalidPhoto = errors.New("invalid photo")

// NewPhoto describes a photo to add to the catalog. At least one of AssetID,
// FilePath or CropURL must be set.
type NewPhoto struct {
	Category style.Category `json:"category"`
	AssetID  string         `json:"asset_id,omitempty"`
	FilePath string         `json:"file_path,omitempty"`
	CropURL  string         `json:"crop_url,omitempty"`
	// Disabled adds the photo without showing it in quizzes.
	Disabled bool `json:"disabled,omitempty"`
}

func (p NewPhoto) validate() error {
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidPhoto, p.Category)
	}
	if p.AssetID == "" && p.FilePath == "" && p.CropURL == "" {
		return fmt.Errorf("%w: one of asset id, file path or crop url is required", ErrInvalidPhoto)
	}
	return nil
}

// PhotoFilter narrows List results. The zero value lists everything.
type PhotoFilter struct {
	Category    style.Category
	EnabledOnly bool
}

// CategoryCount reports catalog size per category.
type CategoryCount struct {
	Category style.Category
	Total    int
	Enabled  int
}

// PhotoRepo manages the quiz photo catalog.
type PhotoRepo interface {
	// Add stores a photo at the end of its category's sort order.
	Add(ctx context.Context, p NewPhoto) (quiz.Photo, error)

	// Import adds photos in one transaction. Nothing is stored if any
	// photo is invalid.
	Import(ctx context.Context, photos []NewPhoto) ([]quiz.Photo, error)

	// Get returns a photo by id.
	Get(ctx context.Context, id string) (quiz.Photo, error)

	// List returns photos ordered by category then sort order.
	List(ctx context.Context, f PhotoFilter) ([]quiz.Photo, error)

	// SetEnabled toggles whether a photo can be shown.
	SetEnabled(ctx context.Context, id string, enabled bool) error

	// Counts returns total and enabled counts for every category.
	Counts(ctx context.Context) ([]CategoryCount, error)

	// Pool loads the enabled photos as a quiz photo pool.
	Pool(ctx context.Context) (quiz.StaticPool, error)
}

var photoColumns = []string{"id", "category", "enabled", "asset_id", "file_path", "crop_url", "sort_order"}

// photoRepo implements PhotoRepo with ent's SQL builders.
type photoRepo struct {
	drv *entsql.Driver
}

func (r *photoRepo) Add(ctx context.Context, p NewPhoto) (quiz.Photo, error) {
	if err := p.validate(); err != nil {
		return quiz.Photo{}, err
	}
	return insertPhoto(ctx, r.drv, p)
}

func (r *photoRepo) Import(ctx context.Context, photos []NewPhoto) ([]quiz.Photo, error) {
	for i, p := range photos {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("photo %d: %w", i+1, err)
		}
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	out := make([]quiz.Photo, 0, len(photos))
	for i, p := range photos {
		ph, err := insertPhoto(ctx, tx, p)
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				return nil, fmt.Errorf("photo %d: %w (rollback: %v)", i+1, err, rerr)
			}
			return nil, fmt.Errorf("photo %d: %w", i+1, err)
		}
		out = append(out, ph)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return out, nil
}

func insertPhoto(ctx context.Context, eq dialect.ExecQuerier, p NewPhoto) (quiz.Photo, error) {
	order, err := nextSortOrder(ctx, eq, p.Category)
	if err != nil {
		return quiz.Photo{}, err
	}

	ph := quiz.Photo{
		ID:        uuid.NewString(),
		Category:  p.Category,
		Enabled:   !p.Disabled,
		AssetID:   p.AssetID,
		FilePath:  p.FilePath,
		CropURL:   p.CropURL,
		SortOrder: order,
	}
	q, args := builder().Insert("photos").
		Columns(photoColumns...).
		Values(ph.ID, string(ph.Category), ph.Enabled, ph.AssetID, ph.FilePath, ph.CropURL, ph.SortOrder).
		Query()
	if err := eq.Exec(ctx, q, args, nil); err != nil {
		return quiz.Photo{}, fmt.Errorf("insert photo: %w", err)
	}
	return ph, nil
}

func nextSortOrder(ctx context.Context, eq dialect.ExecQuerier, c style.Category) (int, error) {
	q, args := builder().Select(entsql.Max("sort_order")).
		From(entsql.Table("photos")).
		Where(entsql.EQ("category", string(c))).
		Query()

	var maxOrder sql.NullInt64
	err := query(ctx, eq, q, args, func(rows *entsql.Rows) error {
		return rows.Scan(&maxOrder)
	})
	if err != nil {
		return 0, fmt.Errorf("query sort order: %w", err)
	}
	if !maxOrder.Valid {
		return 1, nil
	}
	return int(maxOrder.Int64) + 1, nil
}

func (r *photoRepo) Get(ctx context.Context, id string) (quiz.Photo, error) {
	q, args := builder().Select(photoColumns...).
		From(entsql.Table("photos")).
		Where(entsql.EQ("id", id)).
		Query()

	var found []quiz.Photo
	if err := query(ctx, r.drv, q, args, scanPhoto(&found)); err != nil {
		return quiz.Photo{}, fmt.Errorf("get photo: %w", err)
	}
	if len(found) == 0 {
		return quiz.Photo{}, fmt.Errorf("photo %s: %w", id, ErrNotFound)
	}
	return found[0], nil
}

func (r *photoRepo) List(ctx context.Context, f PhotoFilter) ([]quiz.Photo, error) {
	sel := builder().Select(photoColumns...).
		From(entsql.Table("photos")).
		OrderBy("category", "sort_order")
	if f.Category != "" {
		sel.Where(entsql.EQ("category", string(f.Category)))
	}
	if f.EnabledOnly {
		sel.Where(entsql.EQ("enabled", true))
	}
	q, args := sel.Query()

	var out []quiz.Photo
	if err := query(ctx, r.drv, q, args, scanPhoto(&out)); err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return out, nil
}

func (r *photoRepo) SetEnabled(ctx context.Context, id string, enabled bool) error {
	q, args := builder().Update("photos").
		Set("enabled", enabled).
		Where(entsql.EQ("id", id)).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, q, args, &res); err != nil {
		return fmt.Errorf("update photo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update photo: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("photo %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *photoRepo) Counts(ctx context.Context) ([]CategoryCount, error) {
	photos, err := r.List(ctx, PhotoFilter{})
	if err != nil {
		return nil, err
	}

	byCat := make(map[style.Category]*CategoryCount)
	out := make([]CategoryCount, 0, len(style.All()))
	for _, c := range style.All() {
		out = append(out, CategoryCount{Category: c})
	}
	for i := range out {
		byCat[out[i].Category] = &out[i]
	}
	for _, ph := range photos {
		cc, ok := byCat[ph.Category]
		if !ok {
			continue
		}
		cc.Total++
		if ph.Enabled {
			cc.Enabled++
		}
	}
	return out, nil
}

func (r *photoRepo) Pool(ctx context.Context) (quiz.StaticPool, error) {
	photos, err := r.List(ctx, PhotoFilter{EnabledOnly: true})
	if err != nil {
		return nil, err
	}
	pool := make(quiz.StaticPool)
	for _, ph := range photos {
		pool[ph.Category] = append(pool[ph.Category], ph)
	}
	return pool, nil
}

func scanPhoto(out *[]quiz.Photo) func(*entsql.Rows) error {
	return func(rows *entsql.Rows) error {
		var (
			ph  quiz.Photo
			cat string
		)
		if err := rows.Scan(&ph.ID, &cat, &ph.Enabled, &ph.AssetID, &ph.FilePath, &ph.CropURL, &ph.SortOrder); err != nil {
			return err
		}
		ph.Category = style.Category(cat)
		*out = append(*out, ph)
		return nil
	}
}
