package voice

import (
	"strings"

	"github.com/rimtoken/go-dashboard/components/dashboard"
)

// Language is the recognition language a transcript was produced in. Only
// Arabic and English carry keyword tables; other languages classify every
// transcript as unrecognized.
type Language string

const (
	Arabic  Language = "ar"
	English Language = "en"
)

// ParseLanguage maps a BCP 47 tag like "ar-SA" or "en-US" to a supported
// Language. Unsupported tags return the empty Language.
func ParseLanguage(tag string) Language {
	prefix := strings.ToLower(tag)
	if idx := strings.IndexAny(prefix, "-_"); idx >= 0 {
		prefix = prefix[:idx]
	}
	switch prefix {
	case "ar":
		return Arabic
	case "en":
		return English
	}
	return ""
}

// Verb keywords. Matching is substring-based over the normalized transcript,
// so "إضافة عنصر جديد" and "please add a chart" both trigger.
var (
	addKeywords = map[Language][]string{
		Arabic:  {"أضف", "إضافة"},
		English: {"add", "create"},
	}
	removeKeywords = map[Language][]string{
		Arabic:  {"احذف", "إزالة"},
		English: {"remove", "delete"},
	}
	resetKeywords = map[Language][]string{
		Arabic:  {"إعادة تعيين", "تعيين افتراضي", "افتراضي"},
		English: {"reset", "default", "restore default"},
	}
	helpKeywords = map[Language][]string{
		Arabic:  {"مساعدة", "المساعدة", "ساعدني"},
		English: {"help", "assist", "commands"},
	}
)

type typeRule struct {
	widget   dashboard.WidgetType
	keywords map[Language][]string
}

// typeRules is scanned in order; the first match wins. "ملخص المحفظة" matches
// portfolio-summary via "ملخص" before the portfolio keyword is ever reached.
var typeRules = []typeRule{
	{dashboard.TypePortfolioSummary, map[Language][]string{
		Arabic:  {"ملخص", "محفظة"},
		English: {"summary", "portfolio"},
	}},
	{dashboard.TypePortfolioChart, map[Language][]string{
		Arabic:  {"مخطط"},
		English: {"chart", "graph"},
	}},
	{dashboard.TypeAssetList, map[Language][]string{
		Arabic:  {"أصول", "عملات"},
		English: {"asset", "coin"},
	}},
	{dashboard.TypeTransactionHistory, map[Language][]string{
		Arabic:  {"معاملات", "تحويلات"},
		English: {"transaction", "history", "transfer"},
	}},
	{dashboard.TypeMarketOverview, map[Language][]string{
		Arabic:  {"سوق", "أسعار"},
		English: {"market", "price"},
	}},
	{dashboard.TypeNewsFeed, map[Language][]string{
		Arabic:  {"أخبار", "تحديثات"},
		English: {"news", "update"},
	}},
	{dashboard.TypePriceAlerts, map[Language][]string{
		Arabic:  {"تنبيهات", "إشعارات"},
		English: {"alert", "notification"},
	}},
}

type sizeRule struct {
	size     dashboard.WidgetSize
	keywords map[Language][]string
}

var sizeRules = []sizeRule{
	{dashboard.SizeSmall, map[Language][]string{Arabic: {"صغير"}, English: {"small"}}},
	{dashboard.SizeMedium, map[Language][]string{Arabic: {"متوسط"}, English: {"medium"}}},
	{dashboard.SizeLarge, map[Language][]string{Arabic: {"كبير"}, English: {"large", "big"}}},
	{dashboard.SizeFull, map[Language][]string{Arabic: {"كامل"}, English: {"full"}}},
}

func containsAny(transcript string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(transcript, keyword) {
			return true
		}
	}
	return false
}

func matchType(transcript string, lang Language) (dashboard.WidgetType, bool) {
	for _, rule := range typeRules {
		if containsAny(transcript, rule.keywords[lang]) {
			return rule.widget, true
		}
	}
	return "", false
}

func matchSize(transcript string, lang Language) dashboard.WidgetSize {
	for _, rule := range sizeRules {
		if containsAny(transcript, rule.keywords[lang]) {
			return rule.size
		}
	}
	return dashboard.SizeMedium
}
