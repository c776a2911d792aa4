package orm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type widget struct {
	ID   uint
	Name string
}

type memCache map[string][]byte

func (m memCache) Get(_ context.Context, key string, dest interface{}) bool {
	raw, ok := m[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

func (m memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m[key] = raw
	return nil
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, db.Create(&widget{Name: n}).Error)
	}
	return db
}

func useCache(t *testing.T, c Cacher) {
	t.Helper()
	prev := CacheStore
	CacheStore = c
	t.Cleanup(func() { CacheStore = prev })
}

func TestPaginate(t *testing.T) {
	db := openDB(t)

	var page []widget
	p, err := New(context.Background(), db).Model(&widget{}).Order("id").Paginate(2, 2, &page)
	require.NoError(t, err)

	assert.Equal(t, Pagination{Total: 5, PerPage: 2, CurrentPage: 2, LastPage: 3}, p)
	require.Len(t, page, 2)
	assert.Equal(t, "c", page[0].Name)
}

func TestWhereFirst(t *testing.T) {
	db := openDB(t)

	var w widget
	require.NoError(t, New(context.Background(), db).Where("name = ?", "d").First(&w))
	assert.Equal(t, "d", w.Name)

	err := New(context.Background(), db).Where("name = ?", "zz").First(&w)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRemember(t *testing.T) {
	mem := memCache{}
	useCache(t, mem)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) ([]string, error) {
		calls++
		return []string{"x"}, nil
	}

	v, err := Remember(ctx, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, v)

	v, err = Remember(ctx, "k", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, v)
	assert.Equal(t, 1, calls)

	_, err = Remember(ctx, "k", 0, load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	boom := errors.New("boom")
	_, err = Remember(ctx, "other", time.Minute, func(context.Context) ([]string, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
	assert.NotContains(t, mem, "other")
}
