package extract

// ArticleResolver assigns canonical numbers to article titles. It keeps the
// last resolved number so that unknown titles continue the sequence.
type ArticleResolver struct {
	titles *TitleTable
	last   int
}

// NewArticleResolver creates a resolver over titles. A nil table uses
// DefaultTitles.
func NewArticleResolver(titles *TitleTable) *ArticleResolver {
	if titles == nil {
		titles = DefaultTitles()
	}
	return &ArticleResolver{titles: titles}
}

// Resolve returns the number for title. Lookup order is exact match, then
// prefix match in either direction, then last+1. When a title maps to
// several numbers, the smallest one after the last resolved number wins.
func (r *ArticleResolver) Resolve(title string) (int, NumberSource) {
	if n, ok := r.pick(r.titles.Exact(title)); ok {
		r.last = n
		return n, NumberTable
	}
	if n, ok := r.pick(r.titles.Prefix(title)); ok {
		r.last = n
		return n, NumberPrefix
	}
	r.last++
	return r.last, NumberFallback
}

// Observe records an explicitly numbered article.
func (r *ArticleResolver) Observe(number int) {
	r.last = number
}

// Last returns the last resolved number.
func (r *ArticleResolver) Last() int {
	return r.last
}

func (r *ArticleResolver) pick(candidates []int) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	best := 0
	for _, n := range candidates {
		if n > r.last && (best == 0 || n < best) {
			best = n
		}
	}
	if best == 0 {
		best = candidates[0]
	}
	return best, true
}
