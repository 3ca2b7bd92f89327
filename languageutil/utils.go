package languageutil

import (
	"fmt"
	"math/rand"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var TitleCaser = cases.Title(language.French)
var LowerCaser = cases.Lower(language.French)

var Greetings []string = []string{
	"Salut %s ! Prêt(e) à composer le look du jour ?",
	"Hello %s ! Voyons ce que ta garde-robe nous réserve.",
	"Coucou %s ! On se fait une tenue stylée aujourd'hui ?",
	"Bonjour %s ! Ta sélection du jour est prête.",
	"Hey %s ! Le style t'attend.",
	"Salut %s ! Nouvelle journée, nouveau look.",
}

// DisplayName normalizes a first name the way the pages show it: title cased
// in French rules, so "édouard" renders "Édouard".
func DisplayName(prenom string) string {
	return TitleCaser.String(LowerCaser.String(prenom))
}

func RandomGreeting(prenom string) string {
	pick := rand.Intn(len(Greetings))
	return fmt.Sprintf(Greetings[pick], DisplayName(prenom))
}
