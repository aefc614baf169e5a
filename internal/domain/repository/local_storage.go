package repository

// LocalStorage define el puerto de almacenamiento clave/valor local de la consola.
// GetItem devuelve ok=false si la clave no existe. Cada SetItem/RemoveItem es un reemplazo atómico.
type LocalStorage interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}
