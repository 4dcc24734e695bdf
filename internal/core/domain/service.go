package domain

// Icon is the enumerated icon variant displayed next to a service.
// Unknown values from stored data fold to IconDocument via ParseIcon.
type Icon string

const (
	IconWallet   Icon = "wallet"
	IconTransfer Icon = "transfer"
	IconMessage  Icon = "message"
	IconBuilding Icon = "building"
	IconTruck    Icon = "truck"
	IconUsers    Icon = "users"
	IconGlobe    Icon = "globe"
	IconDocument Icon = "document"
)

// ParseIcon maps a stored icon key to its variant, defaulting to IconDocument.
func ParseIcon(key string) Icon {
	switch Icon(key) {
	case IconWallet, IconTransfer, IconMessage, IconBuilding,
		IconTruck, IconUsers, IconGlobe, IconDocument:
		return Icon(key)
	default:
		return IconDocument
	}
}

// Service is a catalog entry with bilingual naming. Inactive services are
// hidden from listing and search but never deleted.
type Service struct {
	ID            int    `json:"id"`
	NameEn        string `json:"nameEn"`
	NameAr        string `json:"nameAr"`
	DescriptionEn string `json:"descriptionEn"`
	DescriptionAr string `json:"descriptionAr"`
	Icon          Icon   `json:"icon"`
	Category      string `json:"category"`
	IsActive      bool   `json:"isActive"`
}
