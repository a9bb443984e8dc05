package grocery

// Units are the measure units an item quantity can be expressed in.
var Units = []string{
	"unidad", "kg", "g", "L", "ml", "paquete", "caja", "bolsa",
	"botella", "lata", "sobre", "tableta", "rollo", "hoja", "pieza",
}

// Places are the shops an item can be bought at.
var Places = []string{
	PlaceSupermercado, PlaceAlmacen, PlaceVerduleria, PlaceCarniceria,
	PlacePanaderia, PlaceFarmacia, PlaceOtros,
}

const (
	PlaceSupermercado = "Supermercado"
	PlaceAlmacen      = "Almacén"
	PlaceVerduleria   = "Verdulería"
	PlaceCarniceria   = "Carnicería"
	PlacePanaderia    = "Panadería"
	PlaceFarmacia     = "Farmacia"
	PlaceOtros        = "Otros"
)

// Statuses describe how much of an item is left at home.
var Statuses = []string{StatusAgotado, StatusPoco, StatusDisponible}

const (
	StatusAgotado    = "Agotado"
	StatusPoco       = "Poco"
	StatusDisponible = "Disponible"
)

func IsUnit(s string) bool   { return contains(Units, s) }
func IsPlace(s string) bool  { return contains(Places, s) }
func IsStatus(s string) bool { return contains(Statuses, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
