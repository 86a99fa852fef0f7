// Package hosted es el backend hospedado: implementa los puertos de autenticación
// y de la colección "produtos" sobre los repositorios (postgres o memoria).
package hosted
