//go:build !unix

package platform

// Writable cannot be checked without side effects here; open failures
// surface instead.
func Writable(dir string) error {
	return nil
}
