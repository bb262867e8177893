package search

// Raw lexical weights, expressed on a common 0-1000 scale. A result's final
// score is its raw weight divided by scoreNormalization, so exact matches
// land at 1.0 and everything else below.
const (
	scoreExactEmail          = 1000
	scoreExactName           = 950
	scorePrefixEmail         = 900
	scorePrefixName          = 850
	scoreContainsEmail       = 700
	scoreContainsName        = 650
	scoreContainsDescription = 500

	scoreExactTitle     = 1000
	scorePrefixTitle    = 900
	scoreContainsTitle  = 700
	scoreContainsContent = 500

	scoreNormalization = 1000.0

	// wordMatchDamping discounts the word-level fallback tier so a document
	// matching every query word individually still scores below a document
	// containing the whole phrase in its content.
	wordMatchDamping = 0.8
)

// Match field tags attached to scored results.
const (
	MatchFieldEmail       = "email"
	MatchFieldName        = "name"
	MatchFieldDescription = "description"
	MatchFieldTitle       = "title"
	MatchFieldContent     = "content"
	MatchFieldSemantic    = "semantic"
	MatchFieldHybrid      = "hybrid"
)
