package wiki

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Fold returns the canonical comparison key for a title: NFC
// normalization followed by Unicode case folding. Two titles are "the
// same page" within a guild exactly when their folds are byte-equal.
//
// A fresh Caser is built per call; cases.Caser values are stateful and
// must not be shared between goroutines.
func Fold(title string) string {
	return cases.Fold().String(norm.NFC.String(title))
}
