package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/examprep-admin/internal/client/cache"
	"github.com/dmitrijs2005/examprep-admin/internal/client/client"
	"github.com/dmitrijs2005/examprep-admin/internal/client/models"
)

// Resource is the CRUD surface of one admin collection, e.g. /categories.
// Reads go through the query cache; every mutation drops the cached reads of
// the collection.
type Resource[T any] struct {
	client client.Client
	cache  *cache.QueryCache
	name   string
	path   string
}

// NewResource binds a collection at path. A nil qc disables caching.
func NewResource[T any](c client.Client, qc *cache.QueryCache, name, path string) *Resource[T] {
	if qc == nil {
		qc = cache.New(0)
	}
	return &Resource[T]{client: c, cache: qc, name: name, path: path}
}

func (r *Resource[T]) Name() string { return r.name }

func (r *Resource[T]) itemPath(id string, rest ...string) string {
	p := r.path + "/" + url.PathEscape(id)
	for _, s := range rest {
		p += "/" + s
	}
	return p
}

func (r *Resource[T]) List(ctx context.Context, q models.ListQuery) (*models.Page[T], error) {
	return cache.Fetch(ctx, r.cache, r.name, "list?"+q.Key(), func(ctx context.Context) (*models.Page[T], error) {
		resp, err := r.client.Do(ctx, http.MethodGet, r.path, nil, client.WithQuery(q.Values()))
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", r.name, err)
		}
		var page models.Page[T]
		if err := resp.DecodeData(&page); err != nil {
			return nil, fmt.Errorf("list %s: %w", r.name, err)
		}
		return &page, nil
	})
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	return cache.Fetch(ctx, r.cache, r.name, "get/"+id, func(ctx context.Context) (*T, error) {
		return r.call(ctx, http.MethodGet, r.itemPath(id), nil, "get")
	})
}

// Create posts v, which may be a T or any JSON-encodable payload such as a
// raw message typed by the user.
func (r *Resource[T]) Create(ctx context.Context, v any) (*T, error) {
	out, err := r.call(ctx, http.MethodPost, r.path, v, "create")
	if err != nil {
		return nil, err
	}
	r.invalidate()
	return out, nil
}

func (r *Resource[T]) Update(ctx context.Context, id string, v any) (*T, error) {
	out, err := r.call(ctx, http.MethodPut, r.itemPath(id), v, "update")
	if err != nil {
		return nil, err
	}
	r.invalidate()
	return out, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	if _, err := r.client.Do(ctx, http.MethodDelete, r.itemPath(id), nil); err != nil {
		return fmt.Errorf("delete %s %s: %w", r.name, id, err)
	}
	r.invalidate()
	return nil
}

// Stats fetches the collection's counters from <path>/stats.
func (r *Resource[T]) Stats(ctx context.Context) (models.Stats, error) {
	return cache.Fetch(ctx, r.cache, r.name, "stats", func(ctx context.Context) (models.Stats, error) {
		resp, err := r.client.Do(ctx, http.MethodGet, r.path+"/stats", nil)
		if err != nil {
			return nil, fmt.Errorf("%s stats: %w", r.name, err)
		}
		stats := models.Stats{}
		if err := resp.DecodeData(&stats); err != nil {
			return nil, fmt.Errorf("%s stats: %w", r.name, err)
		}
		return stats, nil
	})
}

// patch sends a partial update to a sub-path of one item.
func (r *Resource[T]) patch(ctx context.Context, id, sub string, body any) (*T, error) {
	out, err := r.call(ctx, http.MethodPatch, r.itemPath(id, sub), body, sub)
	if err != nil {
		return nil, err
	}
	r.invalidate()
	return out, nil
}

// invalidate drops the collection's cached reads and the dashboard
// analytics, which aggregate over every collection.
func (r *Resource[T]) invalidate() {
	r.cache.Invalidate(r.name)
	r.cache.Invalidate(dashboardCacheResource)
}

func (r *Resource[T]) call(ctx context.Context, method, path string, body any, op string) (*T, error) {
	resp, err := r.client.Do(ctx, method, path, body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, r.name, err)
	}
	var out T
	if err := resp.DecodeData(&out); err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, r.name, err)
	}
	return &out, nil
}
