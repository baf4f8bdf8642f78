package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/examprep-admin/internal/client/cache"
	"github.com/dmitrijs2005/examprep-admin/internal/client/client"
	"github.com/dmitrijs2005/examprep-admin/internal/client/models"
)

// ErrUnknownResource is returned by Catalog lookups by name.
var ErrUnknownResource = errors.New("unknown resource")

// TestResource adds publishing to the mock test collection.
type TestResource struct {
	*Resource[models.MockTest]
}

// Publish toggles whether students can see the test.
func (r *TestResource) Publish(ctx context.Context, id string, published bool) (*models.MockTest, error) {
	return r.patch(ctx, id, "publish", map[string]bool{"isPublished": published})
}

// UserResource adds account activation to the user collection.
type UserResource struct {
	*Resource[models.User]
}

func (r *UserResource) SetActive(ctx context.Context, id string, active bool) (*models.User, error) {
	return r.patch(ctx, id, "status", map[string]bool{"isActive": active})
}

// Catalog bundles every admin collection behind one query cache.
type Catalog struct {
	Categories *Resource[models.Category]
	Subjects   *Resource[models.Subject]
	Topics     *Resource[models.Topic]
	Questions  *Resource[models.Question]
	Tests      *TestResource
	Plans      *Resource[models.Plan]
	Users      *UserResource
	Payments   *Resource[models.Payment]

	Reports   *Reports
	Dashboard *Dashboard

	byName map[string]Collection
}

// Collection is the untyped view of a Resource used by the console, which
// addresses collections by name and prints whatever comes back.
type Collection interface {
	Name() string
	ListAny(ctx context.Context, q models.ListQuery) ([]any, models.Pagination, error)
	GetAny(ctx context.Context, id string) (any, error)
	CreateAny(ctx context.Context, v any) (any, error)
	UpdateAny(ctx context.Context, id string, v any) (any, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (models.Stats, error)
}

func NewCatalog(c client.Client, qc *cache.QueryCache) *Catalog {
	if qc == nil {
		qc = cache.New(0)
	}
	cat := &Catalog{
		Categories: NewResource[models.Category](c, qc, "categories", "/categories"),
		Subjects:   NewResource[models.Subject](c, qc, "subjects", "/subjects"),
		Topics:     NewResource[models.Topic](c, qc, "topics", "/topics"),
		Questions:  NewResource[models.Question](c, qc, "questions", "/questions"),
		Tests:      &TestResource{NewResource[models.MockTest](c, qc, "tests", "/tests")},
		Plans:      NewResource[models.Plan](c, qc, "plans", "/subscription-plans"),
		Users:      &UserResource{NewResource[models.User](c, qc, "users", "/users")},
		Payments:   NewResource[models.Payment](c, qc, "payments", "/payments"),
		Reports:    &Reports{client: c, cache: qc},
	}
	cat.Dashboard = &Dashboard{client: c, cache: qc, catalog: cat}

	cat.byName = map[string]Collection{}
	for _, col := range []Collection{
		cat.Categories, cat.Subjects, cat.Topics, cat.Questions,
		cat.Tests.Resource, cat.Plans, cat.Users.Resource, cat.Payments,
	} {
		cat.byName[col.Name()] = col
	}
	return cat
}

// Lookup returns the collection registered under name.
func (c *Catalog) Lookup(name string) (Collection, error) {
	col, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownResource, name)
	}
	return col, nil
}

// Names lists the registered collections in alphabetical order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for n := range c.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *Resource[T]) ListAny(ctx context.Context, q models.ListQuery) ([]any, models.Pagination, error) {
	page, err := r.List(ctx, q)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	items := make([]any, len(page.Items))
	for i := range page.Items {
		items[i] = page.Items[i]
	}
	return items, page.Pagination, nil
}

func (r *Resource[T]) GetAny(ctx context.Context, id string) (any, error) {
	return r.Get(ctx, id)
}

func (r *Resource[T]) CreateAny(ctx context.Context, v any) (any, error) {
	return r.Create(ctx, v)
}

func (r *Resource[T]) UpdateAny(ctx context.Context, id string, v any) (any, error) {
	return r.Update(ctx, id, v)
}

// Reports fetches the tabular reports under /reports/{kind}.
type Reports struct {
	client client.Client
	cache  *cache.QueryCache
}

// Get loads a report; from and to are optional YYYY-MM-DD bounds.
func (r *Reports) Get(ctx context.Context, kind, from, to string) (*models.Report, error) {
	q := url.Values{}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	return cache.Fetch(ctx, r.cache, "reports", kind+"?"+q.Encode(), func(ctx context.Context) (*models.Report, error) {
		resp, err := r.client.Do(ctx, http.MethodGet, "/reports/"+url.PathEscape(kind), nil, client.WithQuery(q))
		if err != nil {
			return nil, fmt.Errorf("report %s: %w", kind, err)
		}
		var rep models.Report
		if err := resp.DecodeData(&rep); err != nil {
			return nil, fmt.Errorf("report %s: %w", kind, err)
		}
		if rep.Kind == "" {
			rep.Kind = kind
		}
		return &rep, nil
	})
}

// Overview is everything the dashboard screen shows.
type Overview struct {
	Analytics models.DashboardAnalytics
	Stats     map[string]models.Stats
}

type Dashboard struct {
	client  client.Client
	cache   *cache.QueryCache
	catalog *Catalog
}

const dashboardCacheResource = "dashboard"

// dashboardStats are the collections whose counters appear on the dashboard.
var dashboardStats = []string{"users", "payments", "questions", "tests"}

// Overview loads the analytics and the per-collection counters concurrently.
// The first failure cancels the remaining calls.
func (d *Dashboard) Overview(ctx context.Context) (*Overview, error) {
	g, gctx := errgroup.WithContext(ctx)

	var analytics models.DashboardAnalytics
	g.Go(func() error {
		a, err := cache.Fetch(gctx, d.cache, dashboardCacheResource, "analytics", func(ctx context.Context) (models.DashboardAnalytics, error) {
			var out models.DashboardAnalytics
			resp, err := d.client.Do(ctx, http.MethodGet, "/dashboard/analytics", nil)
			if err != nil {
				return out, fmt.Errorf("dashboard analytics: %w", err)
			}
			err = resp.DecodeData(&out)
			return out, err
		})
		analytics = a
		return err
	})

	stats := make([]models.Stats, len(dashboardStats))
	for i, name := range dashboardStats {
		col, err := d.catalog.Lookup(name)
		if err != nil {
			return nil, err
		}
		g.Go(func() error {
			s, err := col.Stats(gctx)
			stats[i] = s
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ov := &Overview{Analytics: analytics, Stats: make(map[string]models.Stats, len(stats))}
	for i, name := range dashboardStats {
		ov.Stats[name] = stats[i]
	}
	return ov, nil
}
