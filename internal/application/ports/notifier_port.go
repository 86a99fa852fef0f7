package ports

// Notifier recibe los avisos para el usuario (éxito o error) que emiten los adaptadores.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}
