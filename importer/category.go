package importer

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"anhthu_server/lib"
	"anhthu_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// Exports prefix category paths with a numeric sort key ("2 - Đồ bộ nữ/...").
var categoryPrefixPattern = regexp.MustCompile(`^\d+\s*-\s*`)

// ParseCategoryPath splits a raw category cell into an ordered segment chain.
// The numeric export prefix and the storefront root segment are stripped, so
// "2 - Women Clothes/Đồ bộ nữ/Đồ bộ dài" with root "Women Clothes" yields
// ["Đồ bộ nữ", "Đồ bộ dài"]. An empty result means the row goes to the
// fallback category.
func ParseCategoryPath(raw, root string) []string {
	raw = categoryPrefixPattern.ReplaceAllString(strings.TrimSpace(raw), "")

	var segments []string
	for _, segment := range strings.Split(raw, "/") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		if len(segments) == 0 && root != "" && strings.EqualFold(segment, root) {
			continue
		}
		segments = append(segments, segment)
	}
	return segments
}

// CategoryNormalizer resolves raw category paths to leaf category ids,
// creating missing nodes along the way. Lookups are cached per run keyed by
// the full raw path, so repeated rows in the same category cost one resolve.
type CategoryNormalizer struct {
	store      CatalogStore
	translator Translator
	logger     *gecho.Logger
	root       string
	fallback   string

	cache   map[string]*uuid.UUID
	created int
}

func NewCategoryNormalizer(store CatalogStore, translator Translator, logger *gecho.Logger, root, fallback string) *CategoryNormalizer {
	return &CategoryNormalizer{
		store:      store,
		translator: translator,
		logger:     logger,
		root:       root,
		fallback:   fallback,
		cache:      make(map[string]*uuid.UUID),
	}
}

// Created reports how many categories this normalizer inserted.
func (cn *CategoryNormalizer) Created() int {
	return cn.created
}

// Resolve maps a raw category cell to the id of its leaf category, creating
// the whole chain when absent. A blank or unparseable path resolves to the
// fallback category. Two raw paths that normalize to the same slug chain
// share one chain of category rows.
func (cn *CategoryNormalizer) Resolve(ctx context.Context, raw string) (*uuid.UUID, error) {
	if id, ok := cn.cache[raw]; ok {
		return id, nil
	}

	segments := ParseCategoryPath(raw, cn.root)
	if len(segments) == 0 {
		segments = []string{cn.fallback}
	}

	var parentID *uuid.UUID
	for _, segment := range segments {
		category, err := cn.resolveSegment(ctx, segment, parentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category segment %q: %w", segment, err)
		}
		id := category.ID
		parentID = &id
	}

	cn.cache[raw] = parentID
	return parentID, nil
}

// resolveSegment finds or creates one node of the chain. Identity is
// (slug, parent_id): the segment's display name only matters on first
// creation, later spellings that slugify the same reuse the row.
func (cn *CategoryNormalizer) resolveSegment(ctx context.Context, name string, parentID *uuid.UUID) (*tables.Category, error) {
	slug := lib.Slugify(name)

	existing, err := cn.store.FindCategory(ctx, slug, parentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	display := cn.translateName(ctx, name)

	created, err := cn.store.CreateCategory(ctx, &tables.Category{
		Name:     display,
		Slug:     slug,
		ParentID: parentID,
	})
	if err != nil {
		return nil, err
	}

	cn.created++
	cn.logger.Debug("Created category",
		gecho.Field("name", display),
		gecho.Field("slug", slug),
	)
	return created, nil
}

// translateName is best effort: on failure the Vietnamese name is kept and
// the failure is logged, never fatal.
func (cn *CategoryNormalizer) translateName(ctx context.Context, name string) string {
	translated, err := cn.translator.Translate(ctx, name)
	if err != nil {
		cn.logger.Warn("Category translation failed, keeping original name",
			gecho.Field("name", name),
			gecho.Field("error", err),
		)
		return name
	}
	return translated
}
