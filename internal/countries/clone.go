package countries

func cloneCountry(src *Country) *Country {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Latitude = cloneFloat(src.Latitude)
	cloned.Longitude = cloneFloat(src.Longitude)
	return &cloned
}

func cloneCity(src *City) *City {
	if src == nil {
		return nil
	}
	cloned := *src
	cloned.Latitude = cloneFloat(src.Latitude)
	cloned.Longitude = cloneFloat(src.Longitude)
	return &cloned
}

func cloneSheet(src *CountrySheet) *CountrySheet {
	if src == nil {
		return nil
	}
	cloned := *src
	if src.Data != nil {
		cloned.Data = make(map[string]any, len(src.Data))
		for k, v := range src.Data {
			cloned.Data[k] = v
		}
	}
	return &cloned
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneCountries(src []*Country) []*Country {
	if src == nil {
		return nil
	}
	out := make([]*Country, len(src))
	for i, record := range src {
		out[i] = cloneCountry(record)
	}
	return out
}

func cloneMapData(src *MapData) *MapData {
	if src == nil {
		return nil
	}
	cities := make([]*City, len(src.Cities))
	for i, city := range src.Cities {
		cities[i] = cloneCity(city)
	}
	return &MapData{Country: cloneCountry(src.Country), Cities: cities}
}
