package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// MatriculePrefix préfixe commun des matricules
const MatriculePrefix = "STG"

// FormatMatricule produit un matricule STG-<année>-<numéro sur 4 chiffres>.
// Au-delà de 9999 le numéro s'élargit naturellement.
func FormatMatricule(annee int, numero int64) string {
	return fmt.Sprintf("%s-%d-%04d", MatriculePrefix, annee, numero)
}

// ParseMatricule décompose un matricule. Retourne false si le code ne suit
// pas le format STG-<année>-<numéro>.
func ParseMatricule(code string) (annee int, numero int64, ok bool) {
	parts := strings.Split(code, "-")
	if len(parts) != 3 || parts[0] != MatriculePrefix {
		return 0, 0, false
	}
	annee, err := strconv.Atoi(parts[1])
	if err != nil || annee < 1000 || annee > 9999 {
		return 0, 0, false
	}
	numero, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil || numero < 0 {
		return 0, 0, false
	}
	return annee, numero, true
}
