//go:build !unix

package trash

func isCrossDevice(error) bool {
	return false
}
