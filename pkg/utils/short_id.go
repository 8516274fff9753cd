package utils

// ShortIDLength is how many leading characters of an id tables show
const ShortIDLength = 8

// ShortID trims an id for display. Shorter ids are returned unchanged.
//
// Example:
//   - Input: "3f2b9c1e-8a44-4d2e-9b1f-0c6a7d5e2f10"
//   - Output: "3f2b9c1e"
func ShortID(id string) string {
	if len(id) > ShortIDLength {
		return id[:ShortIDLength]
	}
	return id
}
