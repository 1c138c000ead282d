package sparkline

// blocks are the eight Unicode block-element levels used to render a
// sparkline, lowest to highest.
var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderMemory renders samples' MemoryBytes as a block-character sparkline,
// one rune per sample, oldest first. An empty history renders as "".
func RenderMemory(samples []Sample) string {
	return render(samples, func(s Sample) float64 { return float64(s.MemoryBytes) })
}

// RenderCPU renders samples' CPUPercent as a block-character sparkline.
func RenderCPU(samples []Sample) string {
	return render(samples, func(s Sample) float64 { return s.CPUPercent })
}

func render(samples []Sample, value func(Sample) float64) string {
	if len(samples) == 0 {
		return ""
	}
	min, max := value(samples[0]), value(samples[0])
	for _, s := range samples[1:] {
		v := value(s)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	out := make([]rune, len(samples))
	for i, s := range samples {
		if span == 0 {
			out[i] = blocks[0]
			continue
		}
		t := (value(s) - min) / span
		idx := int(t * float64(len(blocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		out[i] = blocks[idx]
	}
	return string(out)
}
