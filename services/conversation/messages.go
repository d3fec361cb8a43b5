package conversation

import (
	"fmt"
	"strings"
)

const (
	replyAskDate       = "Je n'ai pas bien compris la date. Pouvez-vous reformuler ?<br><i>Exemple : 'le 5' ou 'demain à 20h'</i>"
	replyAskName       = "Entendu. Quel est votre **Nom** ?"
	replyNameAgain     = "Quel est votre **Nom** ?"
	replyMoreOptions   = "D'accord. Voulez-vous voir **toutes** les disponibilités ?"
	replyInvalidEmail  = "Email invalide. Réessayez."
	replyAskNumber     = "Combien de personnes serez-vous ?"
	replyAskOtherDate  = "Très bien. Souhaitez-vous essayer une autre date ?"
	replyAskNewDate    = "Avec plaisir. Quelle date vous conviendrait ?"
	replyFarewell      = "Très bien, à bientôt !"
	replyReset         = "C'est reparti de zéro. Pour quelle date souhaitez-vous réserver ?"
	replyTechnicalFail = "Oups, un problème technique est survenu. Pouvez-vous renvoyer votre message ?"
)

func replyAskSize(date string) string {
	return fmt.Sprintf("C'est noté pour le %s. Vous serez combien de personnes ?", date)
}

func replyExact(date, slot string, size int) string {
	return fmt.Sprintf("✅ Disponible : **%s à %s** (%d pers).<br>Je valide ?", date, slot, size)
}

func replyOtherTime(requested, date, slot string) string {
	return fmt.Sprintf("⚠️ %s est complet le %s.<br>Je vous propose **%s**.<br>Ça vous va ?", requested, date, slot)
}

func replyProposal(date, slot string) string {
	return fmt.Sprintf("Pour le %s, je propose **%s**.<br>On valide ?", date, slot)
}

func replyDayFull(date string) string {
	return fmt.Sprintf("❌ Désolé, je suis complet le %s.<br>Voulez-vous essayer une autre date ?", date)
}

func replyTooLarge(date string, size, free int, at string) string {
	return fmt.Sprintf("Désolé, je n'ai pas de table pour %d personnes le %s.<br>Au mieux, il reste **%d places à %s**.<br>Voulez-vous changer le nombre de personnes ?", size, date, free, at)
}

func replySlotList(date string, slots []string) string {
	return fmt.Sprintf("Voici les créneaux du %s :<br>%s<br>Lequel voulez-vous ?", date, strings.Join(slots, ", "))
}

func replyNothingLeft(date string) string {
	return fmt.Sprintf("En fait, je n'ai plus rien le %s.", date)
}

func replyAskEmail(name string) string {
	return fmt.Sprintf("Merci %s. Quel est votre **Email** ?", name)
}

func replyBooked(name, email, date, slot string) string {
	return fmt.Sprintf("🎉 Parfait ! Réservé au nom de **%s** (<small>%s</small>) pour le **%s à %s**.", name, email, date, slot)
}

func replySlotTaken(date, slot string) string {
	return fmt.Sprintf("😕 Désolé, le créneau de %s le %s vient d'être pris.<br>Donnez-moi une autre heure, ou répondez « oui » et je vous propose le meilleur créneau restant.", slot, date)
}
