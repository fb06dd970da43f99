package memory

import (
	"time"

	"report-service-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const activeTypesKey = "active_chart_types"

// ChartTypeCache keeps the active chart type lookup table in memory so chart
// validation does not hit the database on every configuration write.
type ChartTypeCache struct {
	cache *cache.Cache
}

func NewChartTypeCache() *ChartTypeCache {
	// chart types change rarely; short TTL keeps admin edits visible
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &ChartTypeCache{
		cache: c,
	}
}

func (r *ChartTypeCache) SetActive(types []*entity.ChartType) {
	r.cache.Set(activeTypesKey, types, cache.DefaultExpiration)
	for _, t := range types {
		r.cache.Set("code:"+t.Code, t, cache.DefaultExpiration)
	}
}

func (r *ChartTypeCache) GetActive() ([]*entity.ChartType, bool) {
	if x, found := r.cache.Get(activeTypesKey); found {
		return x.([]*entity.ChartType), true
	}
	return nil, false
}

func (r *ChartTypeCache) GetByCode(code string) (*entity.ChartType, bool) {
	if x, found := r.cache.Get("code:" + code); found {
		return x.(*entity.ChartType), true
	}
	return nil, false
}

func (r *ChartTypeCache) Invalidate() {
	r.cache.Flush()
}
