package preferences

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_SchemaDefaults(t *testing.T) {
	d := Defaults()

	assert.Equal(t, AssetOrderDesc, d.Albums.DefaultAssetOrder)
	assert.False(t, d.Ratings.Enabled)
	assert.True(t, d.Memories.Enabled)
	assert.Equal(t, FoldersResponse{Enabled: false, SidebarWeb: false}, d.Folders)
	assert.Equal(t, PeopleResponse{Enabled: true, SidebarWeb: false}, d.People)
	assert.Equal(t, SharedLinksResponse{Enabled: true, SidebarWeb: false}, d.SharedLinks)
	assert.Equal(t, TagsResponse{Enabled: true, SidebarWeb: true}, d.Tags)
	assert.False(t, d.Download.IncludeEmbeddedVideos)
	assert.False(t, d.Cast.GCastEnabled)
	assert.Equal(t, 1000, d.Video.FrameScanMs)
}

func TestDefaults_SystemDefaults(t *testing.T) {
	d := Defaults()

	assert.Equal(t, EmailNotificationsResponse{Enabled: true, AlbumInvite: true, AlbumUpdate: true}, d.EmailNotifications)
	assert.Equal(t, int64(4<<30), d.Download.ArchiveSize)
	assert.True(t, d.Purchase.ShowSupportBadge)
	assert.Equal(t, "2022-02-12T00:00:00.000Z", d.Purchase.HideBuyButtonUntil)
}

func TestDefaults_ReturnsCopy(t *testing.T) {
	d := Defaults()
	d.Video.FrameScanMs = 1

	assert.Equal(t, 1000, Defaults().Video.FrameScanMs)
}

func TestMustParseDefaults_PanicsOnInvalidYAML(t *testing.T) {
	assert.Panics(t, func() { mustParseDefaults([]byte("albums: [")) })
}

func TestNewResponse_FillsMissingFields(t *testing.T) {
	frame := 500
	resp := NewResponse(&Update{Video: &VideoUpdate{FrameScanMs: &frame}})

	assert.Equal(t, 500, resp.Video.FrameScanMs)
	assert.Equal(t, AssetOrderDesc, resp.Albums.DefaultAssetOrder)
	assert.True(t, resp.Tags.SidebarWeb)
}

func TestNewResponse_NilPartial(t *testing.T) {
	assert.Equal(t, MapPreferences(Defaults()), NewResponse(nil))
}

func TestResponse_JSONShape(t *testing.T) {
	data, err := json.Marshal(NewResponse(nil))
	require.NoError(t, err)

	var m map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Len(t, m, 12)
	assert.NotContains(t, m, "avatar")
	assert.Equal(t, "desc", m["albums"]["defaultAssetOrder"])
	assert.Equal(t, float64(1000), m["video"]["frameScanMs"])
	assert.Equal(t, false, m["cast"]["gCastEnabled"])
	assert.Contains(t, m["download"], "archiveSize")
}
