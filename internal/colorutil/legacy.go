package colorutil

import "fmt"

// GetAlphaFromColor extracts the alpha channel; "rgb(...)" reads as 1.
// Unlike SetAlpha it does not tolerate malformed input.
func GetAlphaFromColor(s string) (float64, error) {
	c, err := Parse(s)
	if err != nil {
		return 0, fmt.Errorf("get alpha: %w", err)
	}
	return c.A, nil
}

// ChangeAlpha returns s with its alpha replaced, or an error wrapping
// ErrInvalidColor when s is malformed.
func ChangeAlpha(s string, alpha float64) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", fmt.Errorf("change alpha: %w", err)
	}
	return c.WithAlpha(alpha).String(), nil
}
