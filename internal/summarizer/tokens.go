package summarizer

// tokenCharRatio is the assumed average number of characters per token.
// The estimate only has to be consistent and cheap; chunk budgets are
// sized conservatively enough to absorb the approximation error.
const tokenCharRatio = 4

// EstimateTokens returns an approximate token count for the given text
// using integer division by tokenCharRatio. Empty text estimates to 0.
// The estimate is deterministic: equal inputs always produce equal
// counts, and longer text never estimates lower than a prefix of it.
func EstimateTokens(text string) int {
	return len(text) / tokenCharRatio
}
