package models

import "fmt"

// Kind identifies one type of tutoring intervention.
type Kind string

const (
	KindSimplify      Kind = "simplify"
	KindExplain       Kind = "explain"
	KindMisconception Kind = "misconception"
	KindRescue        Kind = "rescue"
	KindPlateau       Kind = "plateau"
	KindApplication   Kind = "application"
)

// Kinds lists every valid intervention kind.
func Kinds() []Kind {
	return []Kind{
		KindSimplify,
		KindExplain,
		KindMisconception,
		KindRescue,
		KindPlateau,
		KindApplication,
	}
}

// requestTypeAliases maps upstream request-type names to intervention kinds.
var requestTypeAliases = map[string]Kind{
	"simplify_phrase":     KindSimplify,
	"explain_concept":     KindExplain,
	"chain_concept":       KindExplain,
	"clear_misconception": KindMisconception,
	"rescue_frustration":  KindRescue,
	"rescue_intervention": KindRescue,
	"method_switch":       KindRescue,
	"method_overhaul":     KindPlateau,
	"plateau_escape":      KindPlateau,
	"application_test":    KindApplication,
}

// ParseKind resolves a kind name or upstream request-type alias.
// Unknown names are a caller error, not a fallback case.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	for _, valid := range Kinds() {
		if k == valid {
			return k, nil
		}
	}
	if k, ok := requestTypeAliases[s]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown intervention kind: %q", s)
}

func (k Kind) String() string { return string(k) }
