package voice

import "strings"

// Gender of a synthetic voice or an inferred persona.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

var turkishMaleNames = map[string]struct{}{
	"Ahmet": {}, "Mehmet": {}, "Ali": {}, "Veli": {}, "Burak": {}, "Cem": {},
	"Furkan": {}, "Hakan": {}, "Kemal": {}, "Murat": {}, "Oğuz": {}, "Rıza": {},
	"Tolga": {}, "Ufuk": {}, "Volkan": {}, "Zeki": {}, "Emre": {}, "Serkan": {},
	"Özkan": {}, "Taner": {}, "Selim": {}, "Berk": {}, "Kaan": {}, "Onur": {},
	"Barış": {}, "Arda": {}, "Eren": {}, "Kağan": {}, "Alper": {}, "Sinan": {},
	"Gökhan": {}, "Erhan": {},
}

var turkishFemaleNames = map[string]struct{}{
	"Ayşe": {}, "Fatma": {}, "Zeynep": {}, "Elif": {}, "Deniz": {}, "Ece": {},
	"Gül": {}, "İrem": {}, "Leyla": {}, "Nalan": {}, "Pınar": {}, "Seda": {},
	"Yasemin": {}, "Aslı": {}, "Ebru": {}, "Gamze": {}, "Hülya": {}, "Işıl": {},
	"Jale": {}, "Kübra": {}, "Lale": {}, "Melike": {}, "Nazlı": {}, "Özlem": {},
	"Pelin": {}, "Reyhan": {}, "Sibel": {}, "Tülay": {}, "Ülkü": {}, "Vildan": {},
	"Yeliz": {}, "Zuhal": {},
}

// InferGender classifies a Turkish given name, falling back to a common
// suffix heuristic for names outside the known sets.
func InferGender(name string) Gender {
	if _, ok := turkishMaleNames[name]; ok {
		return GenderMale
	}
	if _, ok := turkishFemaleNames[name]; ok {
		return GenderFemale
	}
	for _, suffix := range []string{"e", "a", "ş", "ü", "ö"} {
		if strings.HasSuffix(name, suffix) {
			return GenderFemale
		}
	}
	return GenderMale
}
