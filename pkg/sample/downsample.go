package sample

// Decimate keeps every second sample of src, starting with the first.
// Destination-based: reuses dst if it has sufficient capacity, otherwise allocates new.
// dst may alias src; the write index never overtakes the read index.
// Returns the destination slice with (len(src)+1)/2 samples.
func Decimate(dst []Sample, src []Sample) []Sample {
	n := (len(src) + 1) / 2
	if cap(dst) < n {
		dst = make([]Sample, n)
	} else {
		dst = dst[:n]
	}

	for i := range n {
		dst[i] = src[2*i]
	}
	return dst
}
