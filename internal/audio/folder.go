package audio

import (
	"encoding/binary"
	"fmt"

	"github.com/mgpai22/waveline/internal/waveform"
)

// PeakFolder consumes a stream of mono s16le samples and keeps the minimum
// and maximum of every block. Writes may split a sample across calls.
type PeakFolder struct {
	sampleRate      int
	samplesPerBlock int

	peaks   []waveform.Peak
	cur     waveform.Peak
	inBlock int
	carry   []byte
}

func NewPeakFolder(sampleRate, samplesPerBlock int) (*PeakFolder, error) {
	if sampleRate <= 0 || samplesPerBlock <= 0 {
		return nil, fmt.Errorf("invalid peak options: rate %d, block %d", sampleRate, samplesPerBlock)
	}
	return &PeakFolder{sampleRate: sampleRate, samplesPerBlock: samplesPerBlock}, nil
}

func (f *PeakFolder) Write(p []byte) (int, error) {
	n := len(p)
	if len(f.carry) == 1 && len(p) > 0 {
		f.add(int16(binary.LittleEndian.Uint16([]byte{f.carry[0], p[0]})))
		f.carry = f.carry[:0]
		p = p[1:]
	}
	for len(p) >= 2 {
		f.add(int16(binary.LittleEndian.Uint16(p)))
		p = p[2:]
	}
	if len(p) == 1 {
		f.carry = append(f.carry[:0], p[0])
	}
	return n, nil
}

func (f *PeakFolder) add(sample int16) {
	v := int(sample)
	if f.inBlock == 0 {
		f.cur = waveform.Peak{Min: v, Max: v}
	} else {
		f.cur.Min = min(f.cur.Min, v)
		f.cur.Max = max(f.cur.Max, v)
	}
	f.inBlock++
	if f.inBlock == f.samplesPerBlock {
		f.peaks = append(f.peaks, f.cur)
		f.inBlock = 0
	}
}

// Envelope returns the peaks folded so far; a trailing partial block
// counts as a full one. A dangling odd byte is dropped.
func (f *PeakFolder) Envelope() *waveform.Envelope {
	peaks := f.peaks
	if f.inBlock > 0 {
		peaks = append(peaks[:len(peaks):len(peaks)], f.cur)
	}
	return &waveform.Envelope{
		Peaks:           peaks,
		SampleRate:      f.sampleRate,
		SamplesPerBlock: f.samplesPerBlock,
	}
}
