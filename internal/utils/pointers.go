package utils

func BoolPtr(b bool) *bool {
	return &b
}

func StringPtr(s string) *string {
	return &s
}

func StringSlicePtr(s []string) *[]string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func PtrStringOr(s *string, defaultVal string) string {
	if s == nil || *s == "" {
		return defaultVal
	}
	return *s
}

// FilterNot returns slice without any of the excluded values.
func FilterNot(slice []string, exclude ...string) []string {
	var out = make([]string, 0, len(slice))

outer:
	for _, v := range slice {
		for _, ex := range exclude {
			if v == ex {
				continue outer
			}
		}
		out = append(out, v)
	}
	return out
}
