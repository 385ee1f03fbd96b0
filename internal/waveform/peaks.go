package waveform

// Peak is the sample envelope of one block: the extreme signed 16-bit
// values seen in it.
type Peak struct {
	Min int
	Max int
}

// Envelope is a precomputed per-block (min, max) summary of an audio track.
type Envelope struct {
	Peaks           []Peak
	SampleRate      int
	SamplesPerBlock int
}

// LengthMs is the audio duration covered by the envelope.
func (e *Envelope) LengthMs() int {
	if e == nil || e.SampleRate <= 0 {
		return 0
	}
	samples := int64(len(e.Peaks)) * int64(e.SamplesPerBlock)
	return int(samples * 1000 / int64(e.SampleRate))
}

func (e *Envelope) Empty() bool {
	return e == nil || len(e.Peaks) == 0
}

// converts a time offset to a fractional block position
func (e *Envelope) blocksAt(ms float64) float64 {
	return ms / 1000 * float64(e.SampleRate) / float64(e.SamplesPerBlock)
}
