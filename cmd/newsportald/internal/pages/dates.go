package pages

import (
	"fmt"
	"time"
)

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

// indexed by time.Weekday
var arabicDays = [...]string{
	"الأحد", "الاثنين", "الثلاثاء", "الأربعاء", "الخميس", "الجمعة", "السبت",
}

// FormatDate renders t as "dd MMMM yyyy" with an Arabic month name.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d %s %d", t.Day(), arabicMonths[t.Month()-1], t.Year())
}

// FormatLongDate renders t as "EEEE, dd MMMM yyyy" in Arabic.
func FormatLongDate(t time.Time) string {
	return arabicDays[t.Weekday()] + ", " + FormatDate(t)
}
