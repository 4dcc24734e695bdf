package memory

import "github.com/rashidq/logistics-portal/internal/core/domain"

// DefaultServices is the catalog loaded at process start. Ids are assigned
// by SeedServices in slice order.
func DefaultServices() []domain.Service {
	return []domain.Service{
		{
			NameEn:        "Transfer Request",
			NameAr:        "طلب تحويل",
			DescriptionEn: "Submit a sponsorship transfer request for a worker",
			DescriptionAr: "تقديم طلب نقل كفالة لعامل",
			Icon:          domain.IconTransfer,
			Category:      "government",
			IsActive:      true,
		},
		{
			NameEn:        "Topping Up",
			NameAr:        "زيادة الرصيد",
			DescriptionEn: "Top up your account balance for paid services",
			DescriptionAr: "زيادة رصيد حسابك للخدمات المدفوعة",
			Icon:          domain.IconWallet,
			Category:      "financial",
			IsActive:      true,
		},
		{
			NameEn:        "Residence Renewal",
			NameAr:        "تجديد الإقامة",
			DescriptionEn: "Renew residence permits for sponsored workers",
			DescriptionAr: "تجديد إقامة العمالة المكفولة",
			Icon:          domain.IconBuilding,
			Category:      "government",
			IsActive:      true,
		},
		{
			NameEn:        "Exit Re-entry Visa",
			NameAr:        "تأشيرة خروج وعودة",
			DescriptionEn: "Issue exit and re-entry visas",
			DescriptionAr: "إصدار تأشيرات الخروج والعودة",
			Icon:          domain.IconGlobe,
			Category:      "government",
			IsActive:      true,
		},
		{
			NameEn:        "Worker Recruitment",
			NameAr:        "استقدام العمالة",
			DescriptionEn: "Request recruitment of domestic or commercial workers",
			DescriptionAr: "طلب استقدام عمالة منزلية أو تجارية",
			Icon:          domain.IconUsers,
			Category:      "recruitment",
			IsActive:      true,
		},
		{
			NameEn:        "Shipment Tracking",
			NameAr:        "تتبع الشحنات",
			DescriptionEn: "Track shipments and delivery orders",
			DescriptionAr: "تتبع الشحنات وطلبات التوصيل",
			Icon:          domain.IconTruck,
			Category:      "logistics",
			IsActive:      true,
		},
		{
			// Retired offering kept for existing request references.
			NameEn:        "Legacy Portal Access",
			NameAr:        "بوابة الخدمات القديمة",
			DescriptionEn: "Access to the retired services portal",
			DescriptionAr: "الوصول إلى بوابة الخدمات القديمة",
			Icon:          domain.IconMessage,
			Category:      "support",
			IsActive:      false,
		},
	}
}
