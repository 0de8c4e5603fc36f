package preferences

import "slices"

// AssetOrder is the sort direction of assets inside an album.
type AssetOrder string

// AssetOrder values.
const (
	AssetOrderAsc  AssetOrder = "asc"
	AssetOrderDesc AssetOrder = "desc"
)

// AssetOrders lists every valid AssetOrder.
var AssetOrders = []AssetOrder{AssetOrderAsc, AssetOrderDesc}

// Valid reports whether o is a known AssetOrder.
func (o AssetOrder) Valid() bool {
	return slices.Contains(AssetOrders, o)
}

// UserAvatarColor is the background color of a user's generated avatar.
type UserAvatarColor string

// UserAvatarColor values.
const (
	AvatarPrimary UserAvatarColor = "primary"
	AvatarPink    UserAvatarColor = "pink"
	AvatarRed     UserAvatarColor = "red"
	AvatarYellow  UserAvatarColor = "yellow"
	AvatarBlue    UserAvatarColor = "blue"
	AvatarGreen   UserAvatarColor = "green"
	AvatarPurple  UserAvatarColor = "purple"
	AvatarOrange  UserAvatarColor = "orange"
	AvatarGray    UserAvatarColor = "gray"
	AvatarAmber   UserAvatarColor = "amber"
)

// UserAvatarColors lists every valid UserAvatarColor.
var UserAvatarColors = []UserAvatarColor{
	AvatarPrimary, AvatarPink, AvatarRed, AvatarYellow, AvatarBlue,
	AvatarGreen, AvatarPurple, AvatarOrange, AvatarGray, AvatarAmber,
}

// Valid reports whether c is a known UserAvatarColor.
func (c UserAvatarColor) Valid() bool {
	return slices.Contains(UserAvatarColors, c)
}
