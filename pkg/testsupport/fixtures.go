package testsupport

import "os"

// LoadFixture reads a test fixture relative to the package directory.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Float returns a pointer to v.
func Float(v float64) *float64 {
	return &v
}

// String returns a pointer to v.
func String(v string) *string {
	return &v
}
