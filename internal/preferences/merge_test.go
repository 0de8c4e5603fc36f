package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMerge_NilUpdateKeepsRecord(t *testing.T) {
	assert.Equal(t, Defaults(), Merge(Defaults(), nil))
}

func TestMerge_AppliesOnlySetFields(t *testing.T) {
	u := &Update{
		Albums:   &AlbumsUpdate{DefaultAssetOrder: ptr(AssetOrderAsc)},
		People:   &PeopleUpdate{SidebarWeb: ptr(true)},
		Download: &DownloadUpdate{ArchiveSize: ptr(int64(1024))},
		Purchase: &PurchaseUpdate{HideBuyButtonUntil: ptr("2030-01-01")},
	}

	got := Merge(Defaults(), u)

	assert.Equal(t, AssetOrderAsc, got.Albums.DefaultAssetOrder)
	assert.True(t, got.People.Enabled)
	assert.True(t, got.People.SidebarWeb)
	assert.Equal(t, int64(1024), got.Download.ArchiveSize)
	assert.False(t, got.Download.IncludeEmbeddedVideos)
	assert.Equal(t, "2030-01-01", got.Purchase.HideBuyButtonUntil)
	assert.True(t, got.Purchase.ShowSupportBadge)
}

func TestMerge_DoesNotModifyInput(t *testing.T) {
	current := Defaults()
	Merge(current, &Update{Memories: &MemoriesUpdate{Enabled: ptr(false)}})
	assert.True(t, current.Memories.Enabled)
}

func TestMerge_IgnoresAvatar(t *testing.T) {
	got := Merge(Defaults(), &Update{Avatar: &AvatarUpdate{Color: ptr(AvatarRed)}})
	assert.Equal(t, Defaults(), got)
}

func TestOverlay_TopWins(t *testing.T) {
	base := &Update{
		Tags:  &TagsUpdate{Enabled: ptr(false), SidebarWeb: ptr(false)},
		Video: &VideoUpdate{FrameScanMs: ptr(200)},
	}
	top := &Update{
		Tags:   &TagsUpdate{SidebarWeb: ptr(true)},
		Avatar: &AvatarUpdate{Color: ptr(AvatarAmber)},
	}

	out := Overlay(base, top)

	require.NotNil(t, out.Tags)
	assert.False(t, *out.Tags.Enabled)
	assert.True(t, *out.Tags.SidebarWeb)
	assert.Equal(t, 200, *out.Video.FrameScanMs)
	assert.Equal(t, AvatarAmber, *out.Avatar.Color)
	assert.Nil(t, out.Cast)
}

func TestOverlay_SharesNoMemory(t *testing.T) {
	base := &Update{Video: &VideoUpdate{FrameScanMs: ptr(200)}}

	out := Overlay(base, nil)
	*out.Video.FrameScanMs = 999

	assert.Equal(t, 200, *base.Video.FrameScanMs)
}

func TestOverlay_BothNil(t *testing.T) {
	assert.Equal(t, &Update{}, Overlay(nil, nil))
}
