package dashboard

// CatalogEntry describes a widget type available for the user to add. The
// dashboard ships Arabic-first display strings with English localizations,
// resolved through ResolveLocalizedValue.
type CatalogEntry struct {
	Type                 WidgetType        `json:"type" yaml:"type"`
	Title                string            `json:"title" yaml:"title"`
	TitleLocalized       map[string]string `json:"title_localized,omitempty" yaml:"title_localized,omitempty"`
	Description          string            `json:"description" yaml:"description"`
	DescriptionLocalized map[string]string `json:"description_localized,omitempty" yaml:"description_localized,omitempty"`
	DefaultSize          WidgetSize        `json:"default_size,omitempty" yaml:"default_size,omitempty"`
}

// TitleForLocale returns the display title for the requested locale with
// graceful fallback to the default title.
func (e CatalogEntry) TitleForLocale(locale string) string {
	return ResolveLocalizedValue(e.TitleLocalized, locale, e.Title)
}

// DescriptionForLocale returns the localized description if available.
func (e CatalogEntry) DescriptionForLocale(locale string) string {
	return ResolveLocalizedValue(e.DescriptionLocalized, locale, e.Description)
}

// Catalog order is fixed and observable: the "add widget" picker and the voice
// type-keyword scan both walk entries in this order.
var builtinCatalog = []CatalogEntry{
	{
		Type:                 TypePortfolioSummary,
		Title:                "ملخص المحفظة",
		TitleLocalized:       map[string]string{"en": "Portfolio Summary"},
		Description:          "عرض ملخص لقيمة محفظتك والتغييرات اليومية",
		DescriptionLocalized: map[string]string{"en": "Total portfolio value and daily change at a glance"},
		DefaultSize:          SizeMedium,
	},
	{
		Type:                 TypePortfolioChart,
		Title:                "مخطط المحفظة",
		TitleLocalized:       map[string]string{"en": "Portfolio Chart"},
		Description:          "عرض مخطط بياني لأداء محفظتك عبر الوقت",
		DescriptionLocalized: map[string]string{"en": "Portfolio performance charted over time"},
		DefaultSize:          SizeMedium,
	},
	{
		Type:                 TypeAssetList,
		Title:                "الأصول",
		TitleLocalized:       map[string]string{"en": "Assets"},
		Description:          "قائمة بجميع الأصول في محفظتك",
		DescriptionLocalized: map[string]string{"en": "Every asset held in your wallet"},
		DefaultSize:          SizeFull,
	},
	{
		Type:                 TypeTransactionHistory,
		Title:                "سجل المعاملات",
		TitleLocalized:       map[string]string{"en": "Transaction History"},
		Description:          "عرض أحدث المعاملات التي قمت بها",
		DescriptionLocalized: map[string]string{"en": "Your most recent transactions"},
		DefaultSize:          SizeLarge,
	},
	{
		Type:                 TypeMarketOverview,
		Title:                "نظرة عامة على السوق",
		TitleLocalized:       map[string]string{"en": "Market Overview"},
		Description:          "اطلع على حالة سوق العملات الرقمية",
		DescriptionLocalized: map[string]string{"en": "Current state of the crypto market"},
		DefaultSize:          SizeLarge,
	},
	{
		Type:                 TypePriceAlerts,
		Title:                "تنبيهات الأسعار",
		TitleLocalized:       map[string]string{"en": "Price Alerts"},
		Description:          "إعداد وإدارة تنبيهات عند تغير أسعار العملات",
		DescriptionLocalized: map[string]string{"en": "Configure alerts for price movements"},
		DefaultSize:          SizeMedium,
	},
	{
		Type:                 TypeNewsFeed,
		Title:                "آخر الأخبار",
		TitleLocalized:       map[string]string{"en": "News Feed"},
		Description:          "أحدث أخبار العملات الرقمية والتكنولوجيا المالية",
		DescriptionLocalized: map[string]string{"en": "Latest crypto and fintech headlines"},
		DefaultSize:          SizeMedium,
	},
	{
		Type:                 TypeFinancialMood,
		Title:                "مؤشر الحالة المالية",
		TitleLocalized:       map[string]string{"en": "Financial Mood"},
		Description:          "تقييم سريع لصحة محفظتك المالية",
		DescriptionLocalized: map[string]string{"en": "A quick read on your portfolio health"},
		DefaultSize:          SizeSmall,
	},
}

// The starter set used to seed a dashboard on first load and to reset it.
// IDs here are stable so reset is idempotent.
var defaultLayout = []Widget{
	{ID: "portfolio-summary", Type: TypePortfolioSummary, Title: "ملخص المحفظة", Size: SizeMedium, Position: 0},
	{ID: "portfolio-chart", Type: TypePortfolioChart, Title: "مخطط المحفظة", Size: SizeMedium, Position: 1},
	{ID: "asset-list", Type: TypeAssetList, Title: "الأصول", Size: SizeFull, Position: 2},
	{ID: "transaction-history", Type: TypeTransactionHistory, Title: "سجل المعاملات", Size: SizeLarge, Position: 3},
	{ID: "market-overview", Type: TypeMarketOverview, Title: "نظرة عامة على السوق", Size: SizeLarge, Position: 4},
}

// BuiltinCatalog returns copies of the built-in catalog entries in display
// order.
func BuiltinCatalog() []CatalogEntry {
	out := make([]CatalogEntry, len(builtinCatalog))
	copy(out, builtinCatalog)
	return out
}

// DefaultLayout returns a fresh deep copy of the starter widgets so later
// mutation of one user's list never touches the shared defaults.
func DefaultLayout() []Widget {
	out := make([]Widget, len(defaultLayout))
	copy(out, defaultLayout)
	return out
}

// CatalogEntryFor looks up the built-in entry for a widget type.
func CatalogEntryFor(t WidgetType) (CatalogEntry, bool) {
	for _, entry := range builtinCatalog {
		if entry.Type == t {
			return entry, true
		}
	}
	return CatalogEntry{}, false
}

// DefaultTitleFor resolves the catalog title for a type and locale. Unknown
// types fall back to the raw type string so callers always get something
// displayable.
func DefaultTitleFor(t WidgetType, locale string) string {
	if entry, ok := CatalogEntryFor(t); ok {
		return entry.TitleForLocale(locale)
	}
	return string(t)
}
