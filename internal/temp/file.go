package temp

import (
	"fmt"
	"os"
)

// FileSource reads sysfs-style temperature files: a leading integer in
// millidegrees Celsius, as exposed under /sys/class/thermal and hwmon.
type FileSource struct{}

// Read opens the file at path and scales its leading integer to degrees.
func (FileSource) Read(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var milli int
	if _, err := fmt.Fscanf(f, "%d", &milli); err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}

	return float64(milli) / 1000.0, nil
}
