package presenter

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

// maps "<field>_<code>" to display text
type Dictionary map[string]string

// returns the display text registered for a field error, if any
func (d Dictionary) Lookup(field, code string) (string, bool) {
	text, ok := d[field+"_"+code]
	if !ok || text == "" {
		return "", false
	}

	return text, true
}

// returns a copy of d with overrides applied on top
func (d Dictionary) Merge(overrides Dictionary) Dictionary {
	merged := make(Dictionary, len(d)+len(overrides))
	maps.Copy(merged, d)
	maps.Copy(merged, overrides)

	return merged
}

// the texts the platform ships for known field errors
func DefaultDictionary() Dictionary {
	return Dictionary{
		"email_invalid":           "Please enter a valid email address.",
		"email_unique":            "An account with this email already exists.",
		"email_required":          "Email is required.",
		"password_required":       "Password is required.",
		"password_min_length":     "Password must be at least 8 characters long.",
		"phone_invalid":           "Please enter a valid phone number.",
		"zip_invalid":             "Please enter a valid ZIP code.",
		"title_required":          "Job title is required.",
		"salary_min_value":        "Salary must be a positive amount.",
		"__all___invalid_login":   "Incorrect email or password.",
		"__all___inactive":        "This account has been deactivated.",
		"non_field_errors_unique": "This record already exists.",
	}
}

// reads a YAML mapping of dictionary entries from path
func LoadDictionary(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}

	dict := Dictionary{}
	if err := yaml.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary %s: %w", path, err)
	}

	return dict, nil
}
