package i18n

import (
	"fmt"
	"time"
)

// Abbreviated month names per language, January first.
var monthNames = map[string][12]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"es": {"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sep", "oct", "nov", "dic"},
	"pt": {"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"},
	"id": {"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"},
	"tr": {"Oca", "Şub", "Mar", "Nis", "May", "Haz", "Tem", "Ağu", "Eyl", "Eki", "Kas", "Ara"},
	"de": {"Jan", "Feb", "März", "Apr", "Mai", "Juni", "Juli", "Aug", "Sept", "Okt", "Nov", "Dez"},
	"fr": {"janv", "févr", "mars", "avr", "mai", "juin", "juil", "août", "sept", "oct", "nov", "déc"},
	"hi": {"जन", "फ़र", "मार्च", "अप्रैल", "मई", "जून", "जुल", "अग", "सित", "अक्तू", "नव", "दिस"},
	"ru": {"янв", "февр", "март", "апр", "май", "июнь", "июль", "авг", "сент", "окт", "нояб", "дек"},
}

// FormatDate renders a calendar date the way the active locale writes
// short dates (year-month-day order for CJK and Korean, day-month for
// most of Europe, month-day for English).
func (tr *Translator) FormatDate(t time.Time) string {
	y, m, d := t.Year(), int(t.Month()), t.Day()
	switch tr.Language() {
	case "ko":
		return fmt.Sprintf("%d년 %d월 %d일", y, m, d)
	case "ja":
		return fmt.Sprintf("%d年%d月%d日", y, m, d)
	case "zh":
		return fmt.Sprintf("%d年%d月%d日", y, m, d)
	case "es", "pt", "id", "tr", "fr", "hi":
		return fmt.Sprintf("%d %s %d", d, tr.month(m), y)
	case "de":
		return fmt.Sprintf("%d. %s %d", d, tr.month(m), y)
	case "ru":
		return fmt.Sprintf("%d %s %d г.", d, tr.month(m), y)
	default:
		return fmt.Sprintf("%s %d, %d", tr.month(m), d, y)
	}
}

// ParseAndFormatDate renders a stored "YYYY-MM-DD" due date; malformed
// values come back unchanged.
func (tr *Translator) ParseAndFormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return tr.FormatDate(t)
}

func (tr *Translator) month(m int) string {
	names, ok := monthNames[tr.Language()]
	if !ok {
		names = monthNames["en"]
	}
	return names[m-1]
}
