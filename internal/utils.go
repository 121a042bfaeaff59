package internal

import "fmt"

// FormatBytes renders n with a binary unit, keeping the exact byte count.
func FormatBytes(n uint64) string {
	if n < 1024 {
		return fmt.Sprintf("%d Bytes", n)
	}
	units := []string{"Bytes", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	z := 0
	v := float64(n)
	for v >= 1024 && z < len(units)-1 {
		v /= 1024
		z++
	}
	return fmt.Sprintf("%.2f %s (%d Bytes)", v, units[z], n)
}
