package board

import "strings"

const genericPlaceholder = "No cards yet. Add the first one."

var placeholdersByColumn = map[string]string{
	"strengths":     "What does the business do well? Which resources can it draw on?",
	"weaknesses":    "Where does it fall short? What do competitors do better?",
	"opportunities": "Which trends or openings could it take advantage of?",
	"threats":       "What obstacles or competitors could hurt it?",

	"problem":           "List the top 3 problems",
	"solution":          "Outline a possible solution for each problem",
	"metrics":           "Key numbers that tell how the business is doing",
	"value_proposition": "Single, clear, compelling message that states why you are different and worth paying attention",
	"unfair_advantage":  "Something that cannot easily be copied or bought",
	"channels":          "Path to customers",
	"customer_segments": "Target customers and users",
	"cost_structure":    "Fixed and variable costs",
	"revenue_streams":   "Revenue model, lifetime value, revenue, gross margin",

	"political":     "Government policy, political stability, trade restrictions",
	"economic":      "Growth, interest and exchange rates, inflation",
	"social":        "Demographics, cultural trends, lifestyle changes",
	"technological": "Innovation, automation, R&D activity",
	"environmental": "Climate, sustainability, environmental regulation",
	"legal":         "Employment, consumer and health and safety law",

	"competitiveRivalry":   "How many competitors are there and how strong are they?",
	"supplierPower":        "How easily can suppliers raise prices?",
	"buyerPower":           "How easily can buyers drive prices down?",
	"threatOfSubstitution": "How likely are customers to find another way of doing what you do?",
	"threatOfNewEntry":     "How easily can newcomers enter the market?",
}

// placeholdersByTitle is searched in order; the first keyword contained in the
// lowercased column title wins.
var placeholdersByTitle = []struct {
	keyword string
	text    string
}{
	{"rivalry", placeholdersByColumn["competitiveRivalry"]},
	{"supplier", placeholdersByColumn["supplierPower"]},
	{"buyer", placeholdersByColumn["buyerPower"]},
	{"substitut", placeholdersByColumn["threatOfSubstitution"]},
	{"entry", placeholdersByColumn["threatOfNewEntry"]},
	{"strength", placeholdersByColumn["strengths"]},
	{"weakness", placeholdersByColumn["weaknesses"]},
	{"opportunit", placeholdersByColumn["opportunities"]},
	{"threat", placeholdersByColumn["threats"]},
	{"problem", placeholdersByColumn["problem"]},
	{"solution", placeholdersByColumn["solution"]},
	{"metric", placeholdersByColumn["metrics"]},
	{"value", placeholdersByColumn["value_proposition"]},
	{"advantage", placeholdersByColumn["unfair_advantage"]},
	{"channel", placeholdersByColumn["channels"]},
	{"segment", placeholdersByColumn["customer_segments"]},
	{"cost", placeholdersByColumn["cost_structure"]},
	{"revenue", placeholdersByColumn["revenue_streams"]},
	{"politic", placeholdersByColumn["political"]},
	{"econom", placeholdersByColumn["economic"]},
	{"social", placeholdersByColumn["social"]},
	{"techno", placeholdersByColumn["technological"]},
	{"environment", placeholdersByColumn["environmental"]},
	{"legal", placeholdersByColumn["legal"]},
}

// Placeholder is the hint shown in an empty column: the entry for the column id,
// otherwise the first title keyword match, otherwise a generic hint.
func Placeholder(columnID, title string) string {
	if text, ok := placeholdersByColumn[columnID]; ok {
		return text
	}

	lower := strings.ToLower(title)
	for _, p := range placeholdersByTitle {
		if strings.Contains(lower, p.keyword) {
			return p.text
		}
	}

	return genericPlaceholder
}
