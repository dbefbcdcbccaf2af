package processing

import "strings"

// LearningStyle is the pedagogical presentation preference that selects the
// instruction block of a prompt.
type LearningStyle int

const (
	// StyleVisual is also the fallback for unrecognized labels.
	StyleVisual LearningStyle = iota
	StyleAuditory
	StyleKinesthetic
	StyleReadingWriting
)

// ParseLearningStyle maps a client label to a LearningStyle. Both the French
// labels of the web form and the English names are recognized, ignoring case
// and surrounding spaces. Anything else is StyleVisual and ok is false; an
// unknown label is never a validation failure.
func ParseLearningStyle(label string) (style LearningStyle, ok bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "visuel", "visual":
		return StyleVisual, true
	case "auditif", "auditory":
		return StyleAuditory, true
	case "kinesthésique", "kinesthesique", "kinesthetic":
		return StyleKinesthetic, true
	case "lecture/écriture", "lecture/ecriture", "reading/writing", "reading-writing":
		return StyleReadingWriting, true
	default:
		return StyleVisual, false
	}
}

// String returns the canonical French label.
func (s LearningStyle) String() string {
	switch s {
	case StyleAuditory:
		return "Auditif"
	case StyleKinesthetic:
		return "Kinesthésique"
	case StyleReadingWriting:
		return "Lecture/Écriture"
	default:
		return "Visuel"
	}
}

// Instructions returns the tone adjustments sent to the model for this style.
func (s LearningStyle) Instructions() string {
	switch s {
	case StyleAuditory:
		return "Expliquez avec des analogies, répétitions et exemples narratifs. " +
			"Suggérez des mnémoniques et des rythmes."
	case StyleKinesthetic:
		return "Proposez des exercices pratiques, des expériences et des manipulations. " +
			"Incluez des activités interactives."
	case StyleReadingWriting:
		return "Fournissez des textes détaillés, des listes et des résumés écrits. " +
			"Encouragez la prise de notes."
	default:
		return "Utilisez des diagrammes, schémas, cartes mentales et exemples visuels. " +
			"Structurez clairement avec des couleurs et des icônes."
	}
}
