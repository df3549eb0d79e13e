// README: Monthly allowance of remote AI generations per caller.
package aiusage

import "errors"

// ErrInsufficientTokens is returned when a caller has no generations left for the current month.
var ErrInsufficientTokens = errors.New("monthly AI generation allowance exhausted")

// DefaultTokens is the number of remote generations granted per month.
const DefaultTokens = 100
