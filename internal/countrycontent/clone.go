package countrycontent

func cloneContents(src []*CountryContent) []*CountryContent {
	if src == nil {
		return nil
	}
	out := make([]*CountryContent, len(src))
	for i, record := range src {
		if record == nil {
			continue
		}
		cloned := *record
		out[i] = &cloned
	}
	return out
}
