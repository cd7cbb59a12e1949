package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edupath/edupath-backend/internal/model"
	"github.com/edupath/edupath-backend/internal/slug"
)

func TestDefaultSeed(t *testing.T) {
	data := DefaultSeed()

	assert.Len(t, data.Courses, 7)
	assert.NotEmpty(t, data.BlogPosts)
	assert.NotEmpty(t, data.Testimonials)

	for _, c := range data.Courses {
		assert.Contains(t, []string{model.CategoryUG, model.CategoryPG, model.CategoryPhD}, c.Category)
	}
	for _, b := range data.BlogPosts {
		assert.True(t, slug.IsValid(b.Slug), "seed post %q has invalid slug %q", b.Title, b.Slug)
	}
}

func TestLoadSeedFile_EmptyPathReturnsDefault(t *testing.T) {
	data, err := LoadSeedFile("")
	require.NoError(t, err)
	assert.Len(t, data.Courses, len(DefaultSeed().Courses))
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	payload, err := json.Marshal(SeedData{
		Courses: []*model.Course{{Title: "LLB", Category: model.CategoryUG, Duration: "3 Years",
			Description: "Bachelor of Laws", Eligibility: "10+2"}},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	data, err := LoadSeedFile(path)
	require.NoError(t, err)
	require.Len(t, data.Courses, 1)
	assert.Equal(t, "LLB", data.Courses[0].Title)
}

func TestLoadSeedFile_Errors(t *testing.T) {
	_, err := LoadSeedFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = LoadSeedFile(path)
	assert.Error(t, err)
}

func TestStartSeedWatcher_Validation(t *testing.T) {
	assert.Error(t, StartSeedWatcher(context.Background(), "", func(*SeedData) {}))
	assert.Error(t, StartSeedWatcher(context.Background(), "/tmp/seed.json", nil))
}

func TestStartSeedWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"courses":[]}`), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *SeedData, 1)
	require.NoError(t, StartSeedWatcher(ctx, path, func(d *SeedData) {
		select {
		case changes <- d:
		default:
		}
	}))

	payload, err := json.Marshal(SeedData{Testimonials: []model.Testimonial{{ID: "t1", Name: "A", Course: "MBA", Message: "ok", Rating: 5}}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	select {
	case data := <-changes:
		require.Len(t, data.Testimonials, 1)
		assert.Equal(t, "t1", data.Testimonials[0].ID)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not fire after seed file write")
	}
}
