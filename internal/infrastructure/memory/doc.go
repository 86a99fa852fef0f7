// Package memory implementa los repositorios del backend hospedado en memoria
// (STORE_DRIVER=memory y tests). Los datos se pierden al reiniciar.
package memory
