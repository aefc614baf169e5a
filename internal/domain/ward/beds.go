package ward

import (
	"fmt"
	"slices"
)

// Tipos de sala.
const (
	General = "general"
	ICU     = "icu"
	Private = "private"
)

type layout struct {
	prefix string
	width  int
	count  int
}

var layouts = map[string]layout{
	General: {prefix: "G", width: 3, count: 20},
	ICU:     {prefix: "ICU", width: 2, count: 10},
	Private: {prefix: "P", width: 3, count: 15},
}

// Beds camas de la sala en orden (G001..G020, ICU01..ICU10, P001..P015).
// Sala desconocida = nil.
func Beds(wardType string) []string {
	l, ok := layouts[wardType]
	if !ok {
		return nil
	}
	beds := make([]string, 0, l.count)
	for i := 1; i <= l.count; i++ {
		beds = append(beds, fmt.Sprintf("%s%0*d", l.prefix, l.width, i))
	}
	return beds
}

// IsBedOf indica si la cama pertenece a la sala.
func IsBedOf(wardType, bed string) bool {
	return slices.Contains(Beds(wardType), bed)
}

// TotalBeds total de camas del hospital.
func TotalBeds() int {
	total := 0
	for _, l := range layouts {
		total += l.count
	}
	return total
}

// Free camas de la sala que no figuran en taken, en orden.
func Free(wardType string, taken map[string]bool) []string {
	free := make([]string, 0)
	for _, bed := range Beds(wardType) {
		if !taken[bed] {
			free = append(free, bed)
		}
	}
	return free
}

// Types tipos de sala en orden de presentación.
func Types() []string { return []string{General, ICU, Private} }
