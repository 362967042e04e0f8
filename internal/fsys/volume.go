package fsys

// Volume describes the filesystem a scanned path lives on
type Volume struct {
	TotalBytes int64
	FreeBytes  int64
}

// UsedBytes returns bytes used on this volume
func (v Volume) UsedBytes() int64 {
	return v.TotalBytes - v.FreeBytes
}

// UsedPercent returns percentage of the volume used
func (v Volume) UsedPercent() float64 {
	if v.TotalBytes == 0 {
		return 0
	}
	return float64(v.UsedBytes()) / float64(v.TotalBytes) * 100
}
