package processing

import (
	"fmt"
	"strings"
)

// lessonSections lists the parts every generated lesson must contain, in order.
var lessonSections = []string{
	"📚 **Introduction**: Contextualiser le sujet et expliquer son importance",
	"🎯 **Objectifs d'apprentissage**: Ce que l'élève saura faire après la leçon",
	"📖 **Contenu principal**: Explications claires avec exemples concrets",
	"💡 **Exemples pratiques**: Applications réelles et exercices guidés",
	"✏️ **Exercices**: Questions de compréhension et problèmes à résoudre",
	"🎓 **Résumé**: Points clés à retenir",
	"🚀 **Pour aller plus loin**: Ressources et suggestions d'approfondissement",
}

// BuildPrompt renders the tutoring instruction for a lesson. It is a pure
// function of its arguments. Topics are joined in the order given; a nil or
// non-positive duration omits the duration sentence.
func BuildPrompt(subject, level, learningStyle string, topics []string, duration *int) string {
	topicsText := "général"
	if len(topics) > 0 {
		topicsText = strings.Join(topics, ", ")
	}

	style, _ := ParseLearningStyle(learningStyle)

	var b strings.Builder
	b.WriteString("Vous êtes un tuteur éducatif expert, spécialisé dans l'enseignement personnalisé. ")
	fmt.Fprintf(&b, "Créez une leçon détaillée et engageante pour un élève de niveau %s en %s. ", level, subject)
	fmt.Fprintf(&b, "Thèmes à couvrir: %s.", topicsText)
	if duration != nil && *duration > 0 {
		fmt.Fprintf(&b, "\nDurée de la session: %d minutes.", *duration)
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Style d'apprentissage de l'élève: %s\n", learningStyle)
	b.WriteString(style.Instructions())
	b.WriteString("\n\n")

	b.WriteString("La leçon doit inclure:\n")
	for _, section := range lessonSections {
		b.WriteString(section)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("Formatez la leçon de manière claire et structurée avec des sections bien définies. ")
	b.WriteString("Adaptez le vocabulaire et les exemples au niveau de l'élève. ")
	b.WriteString("Rendez la leçon interactive et motivante.")

	return b.String()
}
