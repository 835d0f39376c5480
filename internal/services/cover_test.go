// filepath: internal/services/cover_test.go
package services

import (
	"testing"

	"mediacatalog/internal/models"

	"github.com/stretchr/testify/assert"
)

const placeholder = "https://placehold.co/600x400?text=New+Album"

func testPolicy() coverPolicy {
	return coverPolicy{placeholder: placeholder}
}

func TestApplyNewPreview(t *testing.T) {
	t.Run("First preview replaces placeholder without rotating it", func(t *testing.T) {
		album := &models.Album{Cover: placeholder, BgImages: []string{}}
		testPolicy().applyNewPreview(album, "p1")
		assert.Equal(t, "p1", album.Cover)
		assert.Empty(t, album.BgImages)
	})

	t.Run("Old cover rotates into backgrounds", func(t *testing.T) {
		album := &models.Album{Cover: "p1", BgImages: []string{}}
		testPolicy().applyNewPreview(album, "p2")
		assert.Equal(t, "p2", album.Cover)
		assert.Equal(t, []string{"p1"}, album.BgImages)
	})

	t.Run("Backgrounds are capped", func(t *testing.T) {
		album := &models.Album{Cover: "p4", BgImages: []string{"p3", "p2", "p1"}}
		testPolicy().applyNewPreview(album, "p5")
		assert.Equal(t, "p5", album.Cover)
		assert.Equal(t, []string{"p4", "p3", "p2"}, album.BgImages)
	})

	t.Run("Manual cover is not displaced", func(t *testing.T) {
		album := &models.Album{Cover: "manual", IsManualCover: true, BgImages: []string{"p1"}}
		testPolicy().applyNewPreview(album, "p2")
		assert.Equal(t, "manual", album.Cover)
		assert.Equal(t, []string{"p2", "p1"}, album.BgImages)
	})

	t.Run("Empty preview changes nothing", func(t *testing.T) {
		album := &models.Album{Cover: "p1", BgImages: []string{"p0"}}
		testPolicy().applyNewPreview(album, "")
		assert.Equal(t, "p1", album.Cover)
		assert.Equal(t, []string{"p0"}, album.BgImages)
	})

	t.Run("Configured placeholder never rotates into backgrounds", func(t *testing.T) {
		policy := coverPolicy{placeholder: "https://example.com/blank.png"}
		album := &models.Album{Cover: "https://example.com/blank.png", BgImages: []string{}}
		policy.applyNewPreview(album, "p1")
		assert.Equal(t, "p1", album.Cover)
		assert.Empty(t, album.BgImages)

		policy.applyNewPreview(album, "p2")
		assert.Equal(t, "p2", album.Cover)
		assert.Equal(t, []string{"p1"}, album.BgImages, "Custom placeholder must not enter the rotation")
	})
}

func TestApplyHistory(t *testing.T) {
	t.Run("Rebuilds cover and backgrounds from previews", func(t *testing.T) {
		album := &models.Album{Cover: "stale", BgImages: []string{"old"}}
		testPolicy().applyHistory(album, []string{"p4", "p3", "p2", "p1"})
		assert.Equal(t, "p4", album.Cover)
		assert.Equal(t, []string{"p3", "p2", "p1"}, album.BgImages)
	})

	t.Run("Failed head preview keeps prior state", func(t *testing.T) {
		album := &models.Album{Cover: "p9", BgImages: []string{"p8"}}
		testPolicy().applyHistory(album, []string{"", "p3"})
		assert.Equal(t, "p9", album.Cover)
		assert.Equal(t, []string{"p8"}, album.BgImages)
	})

	t.Run("Failed tail previews are skipped", func(t *testing.T) {
		album := &models.Album{}
		testPolicy().applyHistory(album, []string{"p4", "", "p2", "p1"})
		assert.Equal(t, "p4", album.Cover)
		assert.Equal(t, []string{"p2", "p1"}, album.BgImages)
	})

	t.Run("No items keeps prior presentation", func(t *testing.T) {
		album := &models.Album{Cover: "https://static.example.com/seed.jpg", BgImages: []string{"p0"}}
		testPolicy().applyHistory(album, nil)
		assert.Equal(t, "https://static.example.com/seed.jpg", album.Cover, "A static cover must survive an empty history")
		assert.Equal(t, []string{"p0"}, album.BgImages)
	})

	t.Run("Manual cover drops the head preview like an automatic one", func(t *testing.T) {
		album := &models.Album{Cover: "manual", IsManualCover: true}
		testPolicy().applyHistory(album, []string{"p4", "p3", "p2", "p1"})
		assert.Equal(t, "manual", album.Cover)
		assert.Equal(t, []string{"p3", "p2", "p1"}, album.BgImages)
	})
}

func TestPushBg_IgnoresPlaceholders(t *testing.T) {
	album := &models.Album{BgImages: []string{}}
	testPolicy().pushBg(album, placeholder)
	testPolicy().pushBg(album, "")
	assert.Empty(t, album.BgImages)
}
