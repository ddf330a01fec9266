package xl2html

import (
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
)

// The cultures the formatting collaborator understands, paired index-wise
// with supportedLocales.
var supportedCultures = []excelize.CultureName{
	excelize.CultureNameEnUS,
	excelize.CultureNameJaJP,
	excelize.CultureNameKoKR,
	excelize.CultureNameZhCN,
	excelize.CultureNameZhTW,
}

var supportedLocales = []language.Tag{
	language.AmericanEnglish,
	language.Japanese,
	language.Korean,
	language.SimplifiedChinese,
	language.TraditionalChinese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// cultureForLocale maps a BCP-47 locale tag onto the nearest culture the
// number-format renderer supports. Unparseable or unmatched tags fall back
// to en-US.
func cultureForLocale(locale string) excelize.CultureName {
	if locale == "" {
		return excelize.CultureNameEnUS
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return excelize.CultureNameEnUS
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return excelize.CultureNameEnUS
	}
	return supportedCultures[idx]
}
