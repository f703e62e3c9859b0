package recommend

import (
	"strconv"

	"github.com/wichananm65/bookstore-backend/internal/book"
	"github.com/wichananm65/bookstore-backend/internal/tfidf"
)

// Field weights are expressed as token repetition, which is equivalent to
// linear scaling under the term-frequency formula.
const (
	titleWeight    = 3
	categoryWeight = 2
	authorWeight   = 2

	// only the leading slice of the description is indexed; long blurbs
	// would otherwise drown out the title signal
	descriptionPrefixLen = 200
)

// ContentTokens flattens a book into its weighted token multiset: title ×3,
// first 200 characters of the description ×1, category name ×2, author
// name ×2. An unresolved reference degrades to its numeric id string
// (usually dropped by the tokenizer, never a failure); missing fields are
// omitted.
func ContentTokens(b book.Book) []string {
	out := make([]string, 0, 32)

	out = appendRepeated(out, tfidf.Tokenize(b.Title), titleWeight)

	desc := b.Description
	if runes := []rune(desc); len(runes) > descriptionPrefixLen {
		desc = string(runes[:descriptionPrefixLen])
	}
	out = append(out, tfidf.Tokenize(desc)...)

	out = appendRepeated(out, refTokens(b.Category), categoryWeight)
	out = appendRepeated(out, refTokens(b.Author), authorWeight)
	return out
}

func refTokens(ref *book.Ref) []string {
	if ref == nil {
		return nil
	}
	if ref.Name != "" {
		return tfidf.Tokenize(ref.Name)
	}
	return tfidf.Tokenize(strconv.Itoa(ref.ID))
}

func appendRepeated(dst []string, tokens []string, times int) []string {
	for i := 0; i < times; i++ {
		dst = append(dst, tokens...)
	}
	return dst
}
