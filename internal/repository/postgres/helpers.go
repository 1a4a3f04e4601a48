package postgres

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullStringPtr(value *string) any {
	if value == nil || *value == "" {
		return nil
	}
	return *value
}

func nullFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}
