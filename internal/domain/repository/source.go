package repository

// IsValidSource returns true if s is a supported mention source.
func IsValidSource(s Source) bool {
	switch s {
	case SourceTwitter, SourceReddit, SourceNews, SourceForums:
		return true
	default:
		return false
	}
}

// DefaultSources returns the sources tracked when none are configured.
func DefaultSources() []string {
	return []string{string(SourceTwitter), string(SourceReddit), string(SourceNews)}
}

// NormalizeSource converts a raw string to a valid source (or twitter).
func NormalizeSource(s string) Source {
	if s == "" {
		return SourceTwitter
	}
	src := Source(s)
	if IsValidSource(src) {
		return src
	}
	return SourceTwitter
}
