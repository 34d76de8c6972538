package match

// Matcher runs the strategy cascade in order; the first structural match
// wins.
type Matcher struct {
	strategies []Strategy
}

// NewMatcher builds the default cascade: slug containment, then filtered
// token containment, then sliding windows.
func NewMatcher() *Matcher {
	return &Matcher{strategies: []Strategy{
		SlugContainment{},
		TokenContainment{},
		WindowContainment{},
	}}
}

func (m *Matcher) Match(normalized string, keys []string) (string, bool) {
	for _, s := range m.strategies {
		if key, ok := s.TryMatch(normalized, keys); ok {
			return key, true
		}
	}
	return "", false
}
