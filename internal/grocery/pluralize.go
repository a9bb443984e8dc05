package grocery

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

var pluralUnits = map[string]string{
	"unidad":  "Unidades",
	"paquete": "Paquetes",
	"caja":    "Cajas",
	"bolsa":   "Bolsas",
	"botella": "Botellas",
	"lata":    "Latas",
	"sobre":   "Sobres",
	"tableta": "Tabletas",
	"rollo":   "Rollos",
	"hoja":    "Hojas",
	"pieza":   "Piezas",
	"kg":      "kg",
	"g":       "g",
	"L":       "L",
	"ml":      "ml",
}

// PluralizeUnit renders a quantity with its unit, e.g. "1 Unidad", "3 Unidades", "2 kg".
// A quantity of exactly 1 keeps the singular with its first letter capitalized.
func PluralizeUnit(qty int, unit string) string {
	if qty == 1 {
		return fmt.Sprintf("%d %s", qty, capitalize(unit))
	}
	if plural, ok := pluralUnits[unit]; ok {
		return fmt.Sprintf("%d %s", qty, plural)
	}
	return fmt.Sprintf("%d %ss", qty, capitalize(unit))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
