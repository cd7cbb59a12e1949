package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupath/edupath-backend/internal/auth"
	"github.com/edupath/edupath-backend/internal/config"
	"github.com/edupath/edupath-backend/internal/model"
	"github.com/edupath/edupath-backend/internal/repository"
	"github.com/edupath/edupath-backend/internal/store"
)

func testDeps(t *testing.T) (*config.Config, repository.Store[*model.Course], repository.Store[*model.BlogPost], *store.Store, *auth.Service) {
	t.Helper()
	users, err := auth.SeedUsers()
	require.NoError(t, err)

	cfg := &config.Config{}
	courses := repository.NewMemory("course", func() *model.Course { return &model.Course{} })
	blogs := repository.NewMemory("blogpost", func() *model.BlogPost { return &model.BlogPost{} }, "slug")
	return cfg, courses, blogs, store.New(), auth.NewService(users, "test-secret", time.Hour)
}

func TestNew(t *testing.T) {
	cfg, courses, blogs, st, authSvc := testDeps(t)

	a, err := New(cfg, courses, blogs, st, nil, authSvc)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.NotNil(t, a.BaseCtx)

	a.Shutdown()
	select {
	case <-a.BaseCtx.Done():
	default:
		t.Fatal("Shutdown must cancel the base context")
	}
}

func TestNew_NilChecks(t *testing.T) {
	cfg, courses, blogs, st, authSvc := testDeps(t)

	_, err := New(nil, courses, blogs, st, nil, authSvc)
	assert.Error(t, err)

	_, err = New(cfg, nil, blogs, st, nil, authSvc)
	assert.Error(t, err)

	_, err = New(cfg, courses, nil, st, nil, authSvc)
	assert.Error(t, err)

	_, err = New(cfg, courses, blogs, nil, nil, authSvc)
	assert.Error(t, err)

	_, err = New(cfg, courses, blogs, st, nil, nil)
	assert.Error(t, err)
}

func TestStartWatchers_DisabledIsNoop(t *testing.T) {
	cfg, courses, blogs, st, authSvc := testDeps(t)

	a, err := New(cfg, courses, blogs, st, nil, authSvc)
	require.NoError(t, err)
	defer a.Shutdown()

	assert.NoError(t, a.StartWatchers())
}
