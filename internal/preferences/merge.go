package preferences

// Merge applies u onto current and returns the result. Fields omitted from u
// keep their current value. The avatar section is not part of a resolved
// record and is ignored.
func Merge(current Preferences, u *Update) Preferences {
	p := current
	if u == nil {
		return p
	}
	if s := u.Albums; s != nil {
		apply(&p.Albums.DefaultAssetOrder, s.DefaultAssetOrder)
	}
	if s := u.Folders; s != nil {
		apply(&p.Folders.Enabled, s.Enabled)
		apply(&p.Folders.SidebarWeb, s.SidebarWeb)
	}
	if s := u.Memories; s != nil {
		apply(&p.Memories.Enabled, s.Enabled)
	}
	if s := u.People; s != nil {
		apply(&p.People.Enabled, s.Enabled)
		apply(&p.People.SidebarWeb, s.SidebarWeb)
	}
	if s := u.Ratings; s != nil {
		apply(&p.Ratings.Enabled, s.Enabled)
	}
	if s := u.SharedLinks; s != nil {
		apply(&p.SharedLinks.Enabled, s.Enabled)
		apply(&p.SharedLinks.SidebarWeb, s.SidebarWeb)
	}
	if s := u.Tags; s != nil {
		apply(&p.Tags.Enabled, s.Enabled)
		apply(&p.Tags.SidebarWeb, s.SidebarWeb)
	}
	if s := u.EmailNotifications; s != nil {
		apply(&p.EmailNotifications.Enabled, s.Enabled)
		apply(&p.EmailNotifications.AlbumInvite, s.AlbumInvite)
		apply(&p.EmailNotifications.AlbumUpdate, s.AlbumUpdate)
	}
	if s := u.Download; s != nil {
		apply(&p.Download.ArchiveSize, s.ArchiveSize)
		apply(&p.Download.IncludeEmbeddedVideos, s.IncludeEmbeddedVideos)
	}
	if s := u.Purchase; s != nil {
		apply(&p.Purchase.ShowSupportBadge, s.ShowSupportBadge)
		apply(&p.Purchase.HideBuyButtonUntil, s.HideBuyButtonUntil)
	}
	if s := u.Cast; s != nil {
		apply(&p.Cast.GCastEnabled, s.GCastEnabled)
	}
	if s := u.Video; s != nil {
		apply(&p.Video.FrameScanMs, s.FrameScanMs)
	}
	return p
}

// Overlay returns a new update holding the fields of base with the fields set
// in top taking precedence. Neither argument is modified.
func Overlay(base, top *Update) *Update {
	out := &Update{}
	for _, u := range []*Update{base, top} {
		if u == nil {
			continue
		}
		overlaySection(&out.Albums, u.Albums, func(dst, src *AlbumsUpdate) {
			overlay(&dst.DefaultAssetOrder, src.DefaultAssetOrder)
		})
		overlaySection(&out.Folders, u.Folders, func(dst, src *FoldersUpdate) {
			overlay(&dst.Enabled, src.Enabled)
			overlay(&dst.SidebarWeb, src.SidebarWeb)
		})
		overlaySection(&out.Memories, u.Memories, func(dst, src *MemoriesUpdate) {
			overlay(&dst.Enabled, src.Enabled)
		})
		overlaySection(&out.People, u.People, func(dst, src *PeopleUpdate) {
			overlay(&dst.Enabled, src.Enabled)
			overlay(&dst.SidebarWeb, src.SidebarWeb)
		})
		overlaySection(&out.Ratings, u.Ratings, func(dst, src *RatingsUpdate) {
			overlay(&dst.Enabled, src.Enabled)
		})
		overlaySection(&out.SharedLinks, u.SharedLinks, func(dst, src *SharedLinksUpdate) {
			overlay(&dst.Enabled, src.Enabled)
			overlay(&dst.SidebarWeb, src.SidebarWeb)
		})
		overlaySection(&out.Tags, u.Tags, func(dst, src *TagsUpdate) {
			overlay(&dst.Enabled, src.Enabled)
			overlay(&dst.SidebarWeb, src.SidebarWeb)
		})
		overlaySection(&out.Avatar, u.Avatar, func(dst, src *AvatarUpdate) {
			overlay(&dst.Color, src.Color)
		})
		overlaySection(&out.EmailNotifications, u.EmailNotifications, func(dst, src *EmailNotificationsUpdate) {
			overlay(&dst.Enabled, src.Enabled)
			overlay(&dst.AlbumInvite, src.AlbumInvite)
			overlay(&dst.AlbumUpdate, src.AlbumUpdate)
		})
		overlaySection(&out.Download, u.Download, func(dst, src *DownloadUpdate) {
			overlay(&dst.ArchiveSize, src.ArchiveSize)
			overlay(&dst.IncludeEmbeddedVideos, src.IncludeEmbeddedVideos)
		})
		overlaySection(&out.Purchase, u.Purchase, func(dst, src *PurchaseUpdate) {
			overlay(&dst.ShowSupportBadge, src.ShowSupportBadge)
			overlay(&dst.HideBuyButtonUntil, src.HideBuyButtonUntil)
		})
		overlaySection(&out.Cast, u.Cast, func(dst, src *CastUpdate) {
			overlay(&dst.GCastEnabled, src.GCastEnabled)
		})
		overlaySection(&out.Video, u.Video, func(dst, src *VideoUpdate) {
			overlay(&dst.FrameScanMs, src.FrameScanMs)
		})
	}
	return out
}

func apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// overlay copies the pointed-to value so the result shares no memory with src.
func overlay[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func overlaySection[S any](dst **S, src *S, fn func(dst, src *S)) {
	if src == nil {
		return
	}
	if *dst == nil {
		*dst = new(S)
	}
	fn(*dst, src)
}
