package grocery

import "strings"

// SuggestPlace returns the shop an item is usually bought at, used to prefill the add form.
// It performs case-insensitive matching: exact match first, then substring match.
// Falls back to "Otros" if no match is found.
func SuggestPlace(itemName string) string {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return PlaceOtros
	}

	if place, ok := exactPlace[name]; ok {
		return place
	}

	// ordered longer/more-specific first
	for _, entry := range substringPlaces {
		if strings.Contains(name, entry.keyword) {
			return entry.place
		}
	}

	return PlaceOtros
}

var exactPlace = map[string]string{
	// Verdulería
	"manzana":   PlaceVerduleria,
	"manzanas":  PlaceVerduleria,
	"banana":    PlaceVerduleria,
	"bananas":   PlaceVerduleria,
	"naranja":   PlaceVerduleria,
	"naranjas":  PlaceVerduleria,
	"limón":     PlaceVerduleria,
	"limones":   PlaceVerduleria,
	"tomate":    PlaceVerduleria,
	"tomates":   PlaceVerduleria,
	"papa":      PlaceVerduleria,
	"papas":     PlaceVerduleria,
	"cebolla":   PlaceVerduleria,
	"cebollas":  PlaceVerduleria,
	"ajo":       PlaceVerduleria,
	"lechuga":   PlaceVerduleria,
	"zanahoria": PlaceVerduleria,
	"palta":     PlaceVerduleria,
	"zapallo":   PlaceVerduleria,

	// Carnicería
	"carne":    PlaceCarniceria,
	"pollo":    PlaceCarniceria,
	"chorizo":  PlaceCarniceria,
	"asado":    PlaceCarniceria,
	"milanesa": PlaceCarniceria,
	"cerdo":    PlaceCarniceria,

	// Panadería
	"pan":        PlacePanaderia,
	"facturas":   PlacePanaderia,
	"medialunas": PlacePanaderia,
	"bizcochos":  PlacePanaderia,

	// Farmacia
	"ibuprofeno":      PlaceFarmacia,
	"paracetamol":     PlaceFarmacia,
	"curitas":         PlaceFarmacia,
	"alcohol":         PlaceFarmacia,
	"protector solar": PlaceFarmacia,

	// Almacén
	"arroz":  PlaceAlmacen,
	"fideos": PlaceAlmacen,
	"harina": PlaceAlmacen,
	"azúcar": PlaceAlmacen,
	"yerba":  PlaceAlmacen,
	"aceite": PlaceAlmacen,
	"sal":    PlaceAlmacen,
	"huevos": PlaceAlmacen,

	// Supermercado
	"leche":           PlaceSupermercado,
	"yogur":           PlaceSupermercado,
	"queso":           PlaceSupermercado,
	"manteca":         PlaceSupermercado,
	"detergente":      PlaceSupermercado,
	"lavandina":       PlaceSupermercado,
	"jabón":           PlaceSupermercado,
	"shampoo":         PlaceSupermercado,
	"papel higiénico": PlaceSupermercado,
}

type placeEntry struct {
	keyword string
	place   string
}

var substringPlaces = []placeEntry{
	{"carne picada", PlaceCarniceria},
	{"pechuga", PlaceCarniceria},
	{"bife", PlaceCarniceria},
	{"pollo", PlaceCarniceria},
	{"carne", PlaceCarniceria},

	{"pan integral", PlacePanaderia},
	{"pan lactal", PlaceSupermercado},
	{"factura", PlacePanaderia},

	{"papel", PlaceSupermercado},
	{"leche", PlaceSupermercado},
	{"queso", PlaceSupermercado},
	{"yogur", PlaceSupermercado},
	{"jabón", PlaceSupermercado},
	{"detergente", PlaceSupermercado},

	{"arroz", PlaceAlmacen},
	{"fideo", PlaceAlmacen},
	{"harina", PlaceAlmacen},
	{"aceite", PlaceAlmacen},
	{"galletita", PlaceAlmacen},

	{"manzana", PlaceVerduleria},
	{"tomate", PlaceVerduleria},
	{"lechuga", PlaceVerduleria},
	{"papa", PlaceVerduleria},
	{"cebolla", PlaceVerduleria},

	{"pastilla", PlaceFarmacia},
	{"jarabe", PlaceFarmacia},
}
