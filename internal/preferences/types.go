// Package preferences defines the user preference settings: the partial update
// accepted by the preferences endpoint, the fully resolved record it returns,
// and the validation and default rules between the two.
package preferences

// Update is a partial preferences update. Every section and field is optional;
// nil means the stored value is left unchanged.
type Update struct {
	Albums             *AlbumsUpdate             `json:"albums,omitempty" yaml:"albums,omitempty"`
	Folders            *FoldersUpdate            `json:"folders,omitempty" yaml:"folders,omitempty"`
	Memories           *MemoriesUpdate           `json:"memories,omitempty" yaml:"memories,omitempty"`
	People             *PeopleUpdate             `json:"people,omitempty" yaml:"people,omitempty"`
	Ratings            *RatingsUpdate            `json:"ratings,omitempty" yaml:"ratings,omitempty"`
	SharedLinks        *SharedLinksUpdate        `json:"sharedLinks,omitempty" yaml:"sharedLinks,omitempty"`
	Tags               *TagsUpdate               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Avatar             *AvatarUpdate             `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	EmailNotifications *EmailNotificationsUpdate `json:"emailNotifications,omitempty" yaml:"emailNotifications,omitempty"`
	Download           *DownloadUpdate           `json:"download,omitempty" yaml:"download,omitempty"`
	Purchase           *PurchaseUpdate           `json:"purchase,omitempty" yaml:"purchase,omitempty"`
	Cast               *CastUpdate               `json:"cast,omitempty" yaml:"cast,omitempty"`
	Video              *VideoUpdate              `json:"video,omitempty" yaml:"video,omitempty"`
}

type AvatarUpdate struct {
	Color *UserAvatarColor `json:"color,omitempty" yaml:"color,omitempty"`
}

type MemoriesUpdate struct {
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

type RatingsUpdate struct {
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

type AlbumsUpdate struct {
	DefaultAssetOrder *AssetOrder `json:"defaultAssetOrder,omitempty" yaml:"defaultAssetOrder,omitempty"`
}

type FoldersUpdate struct {
	Enabled    *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	SidebarWeb *bool `json:"sidebarWeb,omitempty" yaml:"sidebarWeb,omitempty"`
}

type PeopleUpdate struct {
	Enabled    *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	SidebarWeb *bool `json:"sidebarWeb,omitempty" yaml:"sidebarWeb,omitempty"`
}

type SharedLinksUpdate struct {
	Enabled    *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	SidebarWeb *bool `json:"sidebarWeb,omitempty" yaml:"sidebarWeb,omitempty"`
}

type TagsUpdate struct {
	Enabled    *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	SidebarWeb *bool `json:"sidebarWeb,omitempty" yaml:"sidebarWeb,omitempty"`
}

type EmailNotificationsUpdate struct {
	Enabled     *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	AlbumInvite *bool `json:"albumInvite,omitempty" yaml:"albumInvite,omitempty"`
	AlbumUpdate *bool `json:"albumUpdate,omitempty" yaml:"albumUpdate,omitempty"`
}

type DownloadUpdate struct {
	ArchiveSize           *int64 `json:"archiveSize,omitempty" yaml:"archiveSize,omitempty"`
	IncludeEmbeddedVideos *bool  `json:"includeEmbeddedVideos,omitempty" yaml:"includeEmbeddedVideos,omitempty"`
}

type PurchaseUpdate struct {
	ShowSupportBadge   *bool   `json:"showSupportBadge,omitempty" yaml:"showSupportBadge,omitempty"`
	HideBuyButtonUntil *string `json:"hideBuyButtonUntil,omitempty" yaml:"hideBuyButtonUntil,omitempty"`
}

type CastUpdate struct {
	GCastEnabled *bool `json:"gCastEnabled,omitempty" yaml:"gCastEnabled,omitempty"`
}

type VideoUpdate struct {
	FrameScanMs *int `json:"frameScanMs,omitempty" yaml:"frameScanMs,omitempty"`
}

// Preferences is a resolved preferences record: every field is populated,
// either from storage or from defaults.
type Preferences struct {
	Albums             AlbumsResponse             `json:"albums" yaml:"albums"`
	Folders            FoldersResponse            `json:"folders" yaml:"folders"`
	Memories           MemoriesResponse           `json:"memories" yaml:"memories"`
	People             PeopleResponse             `json:"people" yaml:"people"`
	Ratings            RatingsResponse            `json:"ratings" yaml:"ratings"`
	SharedLinks        SharedLinksResponse        `json:"sharedLinks" yaml:"sharedLinks"`
	Tags               TagsResponse               `json:"tags" yaml:"tags"`
	EmailNotifications EmailNotificationsResponse `json:"emailNotifications" yaml:"emailNotifications"`
	Download           DownloadResponse           `json:"download" yaml:"download"`
	Purchase           PurchaseResponse           `json:"purchase" yaml:"purchase"`
	Cast               CastResponse               `json:"cast" yaml:"cast"`
	Video              VideoResponse              `json:"video" yaml:"video"`
}

// Response is the shape returned by the preferences endpoint.
type Response Preferences

type AlbumsResponse struct {
	DefaultAssetOrder AssetOrder `json:"defaultAssetOrder" yaml:"defaultAssetOrder"`
}

type RatingsResponse struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

type MemoriesResponse struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
}

type FoldersResponse struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	SidebarWeb bool `json:"sidebarWeb" yaml:"sidebarWeb"`
}

type PeopleResponse struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	SidebarWeb bool `json:"sidebarWeb" yaml:"sidebarWeb"`
}

type TagsResponse struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	SidebarWeb bool `json:"sidebarWeb" yaml:"sidebarWeb"`
}

type SharedLinksResponse struct {
	Enabled    bool `json:"enabled" yaml:"enabled"`
	SidebarWeb bool `json:"sidebarWeb" yaml:"sidebarWeb"`
}

type EmailNotificationsResponse struct {
	Enabled     bool `json:"enabled" yaml:"enabled"`
	AlbumInvite bool `json:"albumInvite" yaml:"albumInvite"`
	AlbumUpdate bool `json:"albumUpdate" yaml:"albumUpdate"`
}

type DownloadResponse struct {
	ArchiveSize           int64 `json:"archiveSize" yaml:"archiveSize"`
	IncludeEmbeddedVideos bool  `json:"includeEmbeddedVideos" yaml:"includeEmbeddedVideos"`
}

type PurchaseResponse struct {
	ShowSupportBadge   bool   `json:"showSupportBadge" yaml:"showSupportBadge"`
	HideBuyButtonUntil string `json:"hideBuyButtonUntil" yaml:"hideBuyButtonUntil"`
}

type CastResponse struct {
	GCastEnabled bool `json:"gCastEnabled" yaml:"gCastEnabled"`
}

type VideoResponse struct {
	FrameScanMs int `json:"frameScanMs" yaml:"frameScanMs"`
}

// MapPreferences returns a resolved record in its response shape.
func MapPreferences(p Preferences) Response {
	return Response(p)
}
