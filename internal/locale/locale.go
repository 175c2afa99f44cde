// Package locale formats dates and month names for the studio's language.
package locale

import (
	"fmt"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type names struct {
	months       [12]string
	weekdays     [7]string // Sunday first, matching time.Weekday
	weekdayShort [7]string
}

var tables = map[language.Base]names{
	mustBase("en"): {
		months: [12]string{"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December"},
		weekdays:     [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		weekdayShort: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	},
	mustBase("es"): {
		months: [12]string{"enero", "febrero", "marzo", "abril", "mayo", "junio",
			"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"},
		weekdays:     [7]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"},
		weekdayShort: [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"},
	},
}

func mustBase(s string) language.Base {
	b, err := language.ParseBase(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Locale formats dates for one language. Unknown languages fall back to English.
type Locale struct {
	tag   language.Tag
	names names
}

// New parses a BCP 47 tag such as "en", "es-ES" or "es".
func New(tag string) Locale {
	t, err := language.Parse(tag)
	if err != nil {
		t = language.English
	}
	base, _ := t.Base()
	n, ok := tables[base]
	if !ok {
		t = language.English
		n = tables[mustBase("en")]
	}
	return Locale{tag: t, names: n}
}

// MonthNames returns the twelve month names, title-cased, January first.
func (l Locale) MonthNames() []string {
	title := cases.Title(l.tag)
	out := make([]string, len(l.names.months))
	for i, m := range l.names.months {
		out[i] = title.String(m)
	}
	return out
}

// MonthName returns the title-cased name of m.
func (l Locale) MonthName(m time.Month) string {
	return cases.Title(l.tag).String(l.names.months[m-1])
}

// ShortDate renders the weekday abbreviation and day of month, e.g. "Mon, 20".
func (l Locale) ShortDate(t time.Time) string {
	return fmt.Sprintf("%s, %d", l.names.weekdayShort[t.Weekday()], t.Day())
}

// LongDate renders weekday, day and month, e.g. "Monday 20 October".
func (l Locale) LongDate(t time.Time) string {
	return fmt.Sprintf("%s %d %s", l.names.weekdays[t.Weekday()], t.Day(), l.names.months[t.Month()-1])
}

// Upper upper-cases s using the locale's casing rules.
func (l Locale) Upper(s string) string {
	return cases.Upper(l.tag).String(s)
}
